package identity

import (
	pkgerrors "github.com/coauto/coauto-backend/pkg/errors"
)

// Directory rejection types. The set is closed: anything the directory
// returns outside this list maps to a generic internal error.
const (
	RejectionCodeMismatch          = "CodeMismatchException"
	RejectionExpiredCode           = "ExpiredCodeException"
	RejectionForbidden             = "ForbiddenException"
	RejectionInvalidParameter      = "InvalidParameterException"
	RejectionInvalidPassword       = "InvalidPasswordException"
	RejectionLimitExceeded         = "LimitExceededException"
	RejectionNotAuthorized         = "NotAuthorizedException"
	RejectionPasswordResetRequired = "PasswordResetRequiredException"
	RejectionResourceNotFound      = "ResourceNotFoundException"
	RejectionTooManyRequests       = "TooManyRequestsException"
	RejectionUserNotConfirmed      = "UserNotConfirmedException"
	RejectionUserNotFound          = "UserNotFoundException"
	RejectionUsernameExists        = "UsernameExistsException"
	RejectionAliasExists           = "AliasExistsException"
	RejectionInternalError         = "InternalErrorException"
	RejectionUnexpectedLambda      = "UnexpectedLambdaException"
	RejectionInvalidLambdaResponse = "InvalidLambdaResponseException"
	RejectionUserLambdaValidation  = "UserLambdaValidationException"
)

var rejectionCodes = map[string]pkgerrors.Code{
	RejectionCodeMismatch:          pkgerrors.CodeValidation,
	RejectionExpiredCode:           pkgerrors.CodeValidation,
	RejectionInvalidParameter:      pkgerrors.CodeValidation,
	RejectionInvalidPassword:       pkgerrors.CodeValidation,
	RejectionNotAuthorized:         pkgerrors.CodeUnauthorized,
	RejectionForbidden:             pkgerrors.CodeForbidden,
	RejectionUserNotConfirmed:      pkgerrors.CodePrecondition,
	RejectionPasswordResetRequired: pkgerrors.CodePrecondition,
	RejectionResourceNotFound:      pkgerrors.CodeNotFound,
	RejectionUserNotFound:          pkgerrors.CodeNotFound,
	RejectionUsernameExists:        pkgerrors.CodeConflict,
	RejectionAliasExists:           pkgerrors.CodeConflict,
	RejectionLimitExceeded:         pkgerrors.CodeRateLimit,
	RejectionTooManyRequests:       pkgerrors.CodeRateLimit,
	RejectionInternalError:         pkgerrors.CodeInternal,
	RejectionUnexpectedLambda:      pkgerrors.CodeDependency,
	RejectionInvalidLambdaResponse: pkgerrors.CodeDependency,
	RejectionUserLambdaValidation:  pkgerrors.CodeDependency,
}

var rejectionMessages = map[string]string{
	RejectionCodeMismatch:          "the confirmation code does not match",
	RejectionExpiredCode:           "the confirmation code has expired",
	RejectionForbidden:             "the directory refused the request",
	RejectionInvalidParameter:      "a request parameter was rejected by the directory",
	RejectionInvalidPassword:       "the password does not meet the directory policy",
	RejectionLimitExceeded:         "directory limit exceeded, try again later",
	RejectionNotAuthorized:         "incorrect username or password",
	RejectionPasswordResetRequired: "a password reset is required before signing in",
	RejectionResourceNotFound:      "the directory resource does not exist",
	RejectionTooManyRequests:       "too many requests to the directory",
	RejectionUserNotConfirmed:      "the account has not been confirmed",
	RejectionUserNotFound:          "the user does not exist in the directory",
	RejectionUsernameExists:        "an account with this email already exists",
	RejectionAliasExists:           "an account with this email already exists",
}

// mapRejection translates a directory rejection type into the service error
// taxonomy. Unknown types collapse to a generic internal error.
func mapRejection(rejectionType, message string) *pkgerrors.Error {
	code, known := rejectionCodes[rejectionType]
	if !known {
		return pkgerrors.New(pkgerrors.CodeInternal, "unexpected directory failure").
			WithDetails(map[string]string{"type": rejectionType})
	}

	publicMsg, ok := rejectionMessages[rejectionType]
	if !ok {
		publicMsg = "the directory rejected the request"
	}
	err := pkgerrors.New(code, publicMsg)
	if message != "" {
		return err.WithDetails(map[string]string{"reason": message})
	}
	return err
}
