package build

import (
	ferrors "git.home.luguber.info/inful/partbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/partbuilder/internal/locate"
)

// Sentinel errors. Specific errors match them with errors.Is and carry the
// offending operation, builder variant or parameter in their context.
var (
	// ErrNoActiveBuilder indicates a construct was used outside every builder scope.
	ErrNoActiveBuilder = ferrors.ContextError("no active builder").Build()

	// ErrUnsupportedBuilder indicates the active builder variant cannot host the construct.
	ErrUnsupportedBuilder = ferrors.ContextError("construct not supported by the active builder").Build()

	// ErrBuilderClosed indicates a closed builder was mutated.
	ErrBuilderClosed = ferrors.ContextError("builder is closed").Build()

	// ErrScopeMismatch indicates a scope was closed out of LIFO order.
	ErrScopeMismatch = ferrors.ContextError("scope closed out of order").Build()

	// ErrNothingToSubtract indicates SUBTRACT on an undefined result.
	ErrNothingToSubtract = ferrors.CombinationError("nothing to subtract from").Build()

	// ErrNothingToIntersect indicates INTERSECT on an undefined result.
	ErrNothingToIntersect = ferrors.CombinationError("nothing to intersect with").Build()

	// ErrInvalidResult indicates a shape of the wrong dimension for the builder variant.
	ErrInvalidResult = ferrors.CombinationError("shape dimension does not match the builder").Build()

	// ErrInvalidOperation indicates an operation was called with missing or wrongly typed operands.
	ErrInvalidOperation = ferrors.OperationError("invalid operation").Build()

	// ErrInvalidParameter indicates a rejected numeric or enumerated argument.
	ErrInvalidParameter = locate.ErrInvalidParameter
)

func unsupported(construct string, active Variant) error {
	return ferrors.From(ErrUnsupportedBuilder).
		WithContext("operation", construct).
		WithContext("builder", active.String()).
		Build()
}

// InvalidOperation returns an ErrInvalidOperation naming the operation and the reason.
func InvalidOperation(operation, reason string) error {
	return ferrors.From(ErrInvalidOperation).
		WithContext("operation", operation).
		WithContext("reason", reason).
		Build()
}

// InvalidParameter returns an ErrInvalidParameter naming the operation and the parameter.
func InvalidParameter(operation, parameter string, value any, rule string) error {
	return ferrors.From(ErrInvalidParameter).
		WithContext("operation", operation).
		WithContext("parameter", parameter).
		WithContext("value", value).
		WithContext("rule", rule).
		Build()
}
