package config

type InternalConfig struct {
	App      App
	JWT      JWT
	Checkout Checkout
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

type Checkout struct {
	// SessionTTLInHours bounds how long an uncommitted checkout session
	// survives in Redis before the front desk has to rebuild the ledger.
	SessionTTLInHours         int
	CommitLockTTLInSeconds    int
	RequestTimeoutInSeconds   int
	SignatureMaxUploadSizeKB  int64
	RabbitMQCheckoutQueue     string
	CheckedOutEventExchange   string
	CheckedOutEventRoutingKey string
}
