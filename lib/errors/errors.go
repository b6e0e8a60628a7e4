package errors

var (
	StorageCoreError          = NewError(100, "storage error")
	StorageRecordDoesNotExist = NewError(101, "record does not exist")
	RecordAlreadyExists       = NewError(102, "record already exists")
	StorageBudgetExceeded     = NewError(103, "record exceeds the storage reserved for it")

	PollNotActive       = NewError(110, "poll is not active")
	UnauthorizedCreator = NewError(111, "only the poll creator can close the poll")
	PollDoesNotExist    = NewError(112, "poll does not exist")
	BallotDoesNotExist  = NewError(113, "ballot does not exist")
	InvalidDescription  = NewError(114, "description is not valid utf-8")

	BadPublicAddress                = NewError(120, "public address is not valid")
	TransactionEmptyOperations      = NewError(121, "transaction has no operations")
	TransactionHasOverMaxOperations = NewError(122, "transaction has too many operations")
	InvalidOperation                = NewError(123, "invalid operation")
	UnknownOperationType            = NewError(124, "unknown operation type")
	OperationBodyInsufficient       = NewError(125, "operation body is insufficient")
	HashDoesNotMatch                = NewError(126, "hash does not match")
	SignatureVerificationFailed     = NewError(127, "signature verification failed")
	DuplicatedOperation             = NewError(128, "transaction has duplicated operations")

	TransactionAlreadyExists = NewError(130, "transaction already exists")
	TransactionDoesNotExist  = NewError(131, "transaction does not exist")

	BadRequestParameter     = NewError(140, "bad request parameter")
	PageQueryLimitMaxExceed = NewError(141, "limit exceeds the maximum")
	ContentTypeNotJSON      = NewError(142, "content type must be application/json")
	HTTPServerError         = NewError(143, "http server error")
	NotImplemented          = NewError(144, "not implemented")
)
