package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"min":            "must be at least %s characters long",
	"max":            "maximum at %s characters long",
	"numeric":        "must be a number",
	"len":            "must be %s characters long",
	"oneof":          "must be one of [%s]",
	"gt":             "must be greater than %s",
	"gte":            "must be greater than or equal to %s",
	"lt":             "must be less than %s",
	"lte":            "must be less than or equal to %s",
	"uuid":           "must be a valid UUID",
	"base64":         "must be a valid base64 string",
	"billing_code":   "must be a valid billing code",
	"payment_method": "must be one of cash, card, check, insurance or mixed",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process the request"
	ErrClientSomethingWrongWithApplication = "something is wrong with the application, please contact the administrator"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "you are not logged in or your session has expired"
	ErrClientServerLongRespond             = "server takes too long to respond"

	ErrClientVisitNotFound           = "visit not found"
	ErrClientVisitAlreadyCheckedOut  = "this visit has already been checked out"
	ErrClientLineItemDuplicate       = "this billing code is already on the ledger"
	ErrClientLineItemNotFound        = "billing code is not on the ledger"
	ErrClientLedgerEmpty             = "at least one billed item is required before checkout"
	ErrClientCoverageStale           = "coverage must be recomputed before this action"
	ErrClientSignatureMissing        = "a captured signature is required before commit"
	ErrClientSignatureAlreadySet     = "the signature has already been captured for this visit"
	ErrClientPaymentInsufficient     = "the recorded payment does not cover the amount due"
	ErrClientPaymentNotConfirmable   = "only non-cash payments that cover the amount due can be confirmed"
	ErrClientCarePackageNotFound     = "care package not found"
	ErrClientCarePackageExhausted    = "this care package has no remaining sessions"
	ErrClientCarePackageWrongPatient = "this care package belongs to another patient"
	ErrClientCarePackageNotLinked    = "this care package does not cover any billed code on the ledger"
	ErrClientCheckoutConflict        = "a different checkout was already committed for this visit"
	ErrClientCheckoutLocked          = "another operator is committing this visit, try again shortly"
	ErrClientCheckoutCommitted       = "this checkout has already been committed"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "request validation failed"
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "failed to parse JSON payload"
	ErrDevCannotMarshalJSON          = "failed to marshal value to JSON"
	ErrDevCannotDecodeBase64         = "failed to decode base64 payload"
	ErrDevServerDeadlineExceeded     = "request deadline exceeded"
	ErrDevServerProcess              = "internal process error"
	ErrDevURLParamValidationFailed   = "URL parameter %s failed validation"
	ErrDevAuthTokenMissing           = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired  = "authorization token is invalid or expired"
	ErrDevVisitNotFound              = "visit does not exist"
	ErrDevVisitAlreadyCheckedOut     = "visit lifecycle state is already checked_out"
	ErrDevLineItemDuplicate          = "line item code already present, add is a rejected no-op"
	ErrDevLineItemNotFound           = "line item code not present on the ledger"
	ErrDevLedgerEmpty                = "checkout rejected: billing ledger is empty"
	ErrDevCoverageStale              = "coverage result revision does not match ledger revision"
	ErrDevSignatureMissing           = "checkout rejected: no signature record captured"
	ErrDevSignatureAlreadySet        = "signature record is immutable once captured"
	ErrDevPaymentInsufficient        = "payment record does not cover patient responsibility"
	ErrDevPaymentNotConfirmable      = "payment confirm precondition failed"
	ErrDevCarePackageNotFound        = "care package document does not exist"
	ErrDevCarePackageExhausted       = "conditional decrement failed: remaining_sessions is 0"
	ErrDevCarePackageWrongPatient    = "care package patient_id mismatch"
	ErrDevCarePackageNotLinked       = "no ledger code in linked_billing_codes"
	ErrDevCheckoutConflict           = "idempotency key exists with a different payload hash"
	ErrDevCheckoutLocked             = "commit lock not acquired"
	ErrDevCheckoutCommitted          = "checkout session state is already committed"
	ErrDevCheckoutStateTransition    = "illegal checkout state transition"
	ErrDevPostgresFailedToFindData   = "failed to find data in postgres"
	ErrDevPostgresFailedToInsertData = "failed to insert data to postgres"
	ErrDevPostgresFailedToUpdateData = "failed to update data in postgres"
	ErrDevPostgresFailedToDeleteData = "failed to delete data from postgres"
	ErrDevPostgresFailedToIterate    = "failed to iterate postgres rows"
	ErrDevMongoFailedToFindDocument  = "failed to find document in mongo"
	ErrDevMongoFailedToInsertDoc     = "failed to insert document to mongo"
	ErrDevMongoFailedToUpdateDoc     = "failed to update document in mongo"
	ErrDevMongoNotObjectID           = "string is not a valid mongo ObjectID"
	ErrDevRedisGetData               = "failed to get data from redis"
	ErrDevRedisSetData               = "failed to set data to redis"
	ErrDevRedisDeleteData            = "failed to delete data from redis"
	ErrDevRedisGetNoData             = "failed to get data from redis with key: %s"
	ErrDevRedisUnlock                = "failed to release redis lock"
	ErrDevMinioFailedToCreateObject  = "failed to create object in bucket: %s"
	ErrDevRabbitMQPublish            = "failed to publish message to queue: %s"
)
