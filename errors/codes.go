package errors

const (
	// Generic codes
	CodeNotFound             = "NOT_FOUND"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeConflict             = "CONFLICT"
	CodeInternalServer       = "INTERNAL_SERVER"
	CodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
	CodeEventPublishError    = "EVENT_PUBLISH_ERROR"
	CodeEventSubscribeError  = "EVENT_SUBSCRIPTION_ERROR"
	CodeObjectMarshalError   = "OBJECT_MARSHALL_ERROR"
	CodeObjectUnmarshalError = "OBJECT_UNMARSHALL_ERROR"
	CodeDatabaseError        = "DATABASE_ERROR"
	CodeRedisOperationError  = "REDIS_ERROR"

	// Domain codes
	CodeRegistrationClosed = "REGISTRATION_CLOSED"
	CodeScheduleInvalid    = "SCHEDULE_INVALID"
	CodeEntryFeeInvalid    = "ENTRY_FEE_INVALID"
)
