package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLPolls        = APIPrefix + APIVersionV1 + "/polls"
	URLPoll         = APIPrefix + APIVersionV1 + "/polls/{id}"
	URLPollBallots  = APIPrefix + APIVersionV1 + "/polls/{id}/ballots"
	URLBallot       = APIPrefix + APIVersionV1 + "/ballots/{id}"
	URLTransactions = APIPrefix + APIVersionV1 + "/transactions"
	URLTransaction  = APIPrefix + APIVersionV1 + "/transactions/{id}"
)
