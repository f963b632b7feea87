package errors

import (
	"fmt"

	apperrors "github.com/podiumlabs/podium/errors"
)

func ScheduleInvalidError(err error) *apperrors.AppError {
	return apperrors.Wrap(err, apperrors.CodeScheduleInvalid,
		"tournament schedule violates timeline constraints")
}

func EntryFeeInvalidError(err error) *apperrors.AppError {
	return apperrors.Wrap(err, apperrors.CodeEntryFeeInvalid,
		"entry fee configuration is invalid")
}

func TokenNotWhitelistedError(address string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeEntryFeeInvalid,
		fmt.Sprintf("token %s is not on the whitelist", address))
}

func RegistrationClosedError(phase string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeRegistrationClosed,
		fmt.Sprintf("tournament is not accepting entries in phase %s", phase))
}

func GameNotWhitelistedError(gameId string) *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidInput,
		fmt.Sprintf("game %s is not on the whitelist", gameId))
}
