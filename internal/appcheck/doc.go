// Package appcheck is the validation pipeline for generated plugin
// descriptor files.
//
// A Checker gates obviously non-code input, runs the structural validator
// and a compiler checker over the candidate, applies caller custom rules,
// and merges everything into one validator.Result:
//
//	c := appcheck.New(appcheck.WithCache(cache.New()))
//	result, err := c.Validate(ctx, src, validator.Options{FileName: "app.ts"})
//
// err is non-nil only for malformed options or a cancelled context.
// Every problem with the candidate itself is an issue on the result.
package appcheck
