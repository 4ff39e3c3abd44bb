package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingVisitIDKey        = "visit_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingPackageIDKey      = "package_id"
	LoggingBillingCodeKey    = "billing_code"
	LoggingTransactionIDKey  = "transaction_id"
	LoggingIdempotencyKeyKey = "idempotency_key"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingOperatorKey       = "operator"
	LoggingAmountCentsKey    = "amount_cents"
	LoggingQueueKey          = "queue"
)
