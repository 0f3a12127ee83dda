// Package errors provides the structured error type used across termtris.
//
// Gameplay rule rejections (a blocked move, a blocked rotation) are never errors;
// they are plain boolean outcomes from the grid. This package covers the rest:
// invalid configuration, stepping a finished game, storage failures.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidArgumentf("unknown command: %d", cmd)
//	err := errors.FailedPrecondition("game is over")
//
// Adding metadata:
//
//	err := errors.Unavailable("leaderboard unreachable").
//	    WithMeta("game_id", gameID)
//
// Wrapping errors:
//
//	if err := repo.Record(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to record score")
//	}
//
// # Error Checking
//
//	if errors.IsFailedPrecondition(err) {
//	    // the session has ended; start a new game
//	}
//
//	code := errors.GetCode(err)
//	message := errors.GetMessage(err)
//
// # Configuration Validation
//
// Every Config.Validate in the module accumulates field problems with a builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidatePositive("Width", c.Width, vb)
//	if c.Clock == nil {
//	    vb.RequiredField("Clock")
//	}
//	return vb.Build()
package errors
