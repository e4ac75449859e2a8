// Package errors provides structured error handling for hexcrawl-api.
//
// Errors carry a code, a message, optional metadata, and a wrapped cause:
//
//	err := errors.NotFound("hexcrawl not found")
//	err := errors.InvalidArgumentf("invalid meter amount: %d", amount)
//	err := errors.DataLoss("corrupt hexcrawl state").WithMeta("hexcrawl_id", id)
//
// Wrapping preserves the original code:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load hexcrawl")
//	}
//
// Type checking:
//
//	if errors.IsNotFound(err) { ... }
//	code := errors.GetCode(err)
//
// Validation errors accumulate field problems and build a single
// InvalidArgument error:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Repository == nil {
//	    vb.RequiredField("Repository")
//	}
//	return vb.Build()
//
// Layer conventions: repositories return NotFound/AlreadyExists/DataLoss,
// the engine surfaces impassable terrain as FailedPrecondition, and
// orchestrators wrap storage errors with business context.
package errors
