package scores

import "github.com/KirkDiggler/termtris/internal/errors"

func validateRecord(input *RecordInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("GameID", input.Entry.GameID, vb)
	if input.Entry.Score < 0 {
		vb.Fieldf("Score", "must not be negative, got %d", input.Entry.Score)
	}
	if input.Entry.FinishedAt.IsZero() {
		vb.RequiredField("FinishedAt")
	}
	return vb.Build()
}
