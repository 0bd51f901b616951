// Package ruleset reads constant visibility rules from YAML.
//
// A rule set document looks like:
//
//	rules:
//	  beta: true
//	  checkout#b: false
//	default: false
//
// Keys under rules are feature names, optionally followed by "#" and a
// variant. The optional default entry becomes the engine default rule.
//
//	set, err := ruleset.LoadFile("rules.yaml")
//	if err != nil {
//		return err
//	}
//	engine, err := feature.New(set.Initial())
//	if err != nil {
//		return err
//	}
//	if err := set.Apply(engine); err != nil {
//		return err
//	}
package ruleset
