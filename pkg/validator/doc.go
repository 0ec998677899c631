// Package validator wraps go-playground/validator v10 with English messages.
//
// Business code depends on the Validator interface. Failures come back as a
// ValidationError keyed by json field name:
//
//	v := validator.MustNew()
//	if err := v.Validate(req); err != nil {
//	    // err.(validator.ValidationError)["identity"] == "identity is a required field"
//	}
package validator
