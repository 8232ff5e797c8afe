// Package errors provides the structured error type used across ecosnap-api.
//
// Errors carry a code, a user-facing message, an optional cause and
// free-form metadata:
//
//	err := errors.NotFound("species not found").
//	    WithMeta("species_id", id)
//
// Wrapping keeps the code of the wrapped error:
//
//	out, err := repo.Load(ctx, input)
//	if err != nil {
//	    return errors.Wrap(err, "failed to load collection")
//	}
//
// Use WrapWithCode to change the semantics of a collaborator failure:
//
//	if err := json.Unmarshal(raw, &doc); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeDataLoss, "collection document is corrupt")
//	}
//
// Component configs validate their dependencies with a ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Catalog == nil {
//	    vb.RequiredField("Catalog")
//	}
//	return vb.Build()
//
// # Layer guidelines
//
// Repositories return NotFound for missing documents and wrap client
// failures. Orchestrators return FailedPrecondition when game rules forbid
// an action (for example a battle with an empty party). Expected game
// outcomes such as a capture cooldown are never errors. The gRPC server
// converts errors with ToGRPCError.
package errors
