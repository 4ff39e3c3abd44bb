package constvars

type ContextKey string

const (
	ContextRequestIDKey         ContextKey = "requestID"
	ContextIsClientRequestIDKey ContextKey = "isClientRequestID"
	ContextOperatorIDKey        ContextKey = "operatorID"
	ContextOperatorNameKey      ContextKey = "operatorName"
)

const (
	RedisKeyCheckoutSessionFormat = "checkout:session:%s"
	RedisKeyCheckoutLockFormat    = "checkout:lock:%s"

	IdempotencyKeyFormat = "checkout:%s"
)

const (
	MongoCollectionInsuranceProfiles = "insurance_profiles"
	MongoCollectionCarePackages      = "care_packages"
)

const (
	SignatureObjectPrefix = "signature"
)
