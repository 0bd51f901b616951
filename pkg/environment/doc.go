// Package environment names the deployment environments a feature toggle engine
// runs in and carries the current one through a context.
//
// It is shared by the logger presets, the configuration loader and the
// environment-scoped visibility rules in package feature:
//
//	env := environment.Parse(os.Getenv("APP_ENV")) // "prod" -> environment.Production
//	ctx := environment.WithContext(ctx, env)
//	if environment.FromContext(ctx).IsProduction() {
//		// ...
//	}
package environment
