// Package validator builds declarative validation rules.
//
// Each rule pairs a Check with the error reported when the check fails.
// Apply runs rules and collects every failure into ValidationErrors:
//
//	err := validator.Apply(
//		validator.MinNum("page", req.Page, 1),
//		validator.MinNum("results", req.Results, 1),
//		validator.MaxNum("results", req.Results, 100),
//	)
//
// The handler package renders ValidationErrors as field-level messages.
package validator
