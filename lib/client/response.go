package client

import (
	"encoding/json"
	"fmt"
)

type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Error is returned when the node answers with a problem.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	b, _ := json.Marshal(e.Problem)
	return fmt.Sprintf("%d %s", e.Problem.Status, string(b))
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Poll struct {
	Links struct {
		Self    Link `json:"self"`
		Ballots Link `json:"ballots"`
	} `json:"_links"`

	ID          uint64 `json:"id"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
	YesVotes    uint64 `json:"yes_votes"`
	NoVotes     uint64 `json:"no_votes"`
	CreatedAt   int64  `json:"created_at"`
	IsActive    bool   `json:"is_active"`
}

type Ballot struct {
	Links struct {
		Self Link `json:"self"`
		Poll Link `json:"poll"`
	} `json:"_links"`

	Address string `json:"address"`
	Poll    string `json:"poll"`
	Voter   string `json:"voter"`
	Option  bool   `json:"option"`
}

type Receipt struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Hash       string   `json:"hash"`
	Source     string   `json:"source"`
	SequenceID uint64   `json:"sequence_id"`
	Created    string   `json:"created"`
	Confirmed  string   `json:"confirmed"`
	Operations []string `json:"operations"`
	Targets    []string `json:"targets"`
}

type PollsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Poll `json:"records"`
	} `json:"_embedded"`
}

type BallotsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Ballot `json:"records"`
	} `json:"_embedded"`
}

type NodeInfo struct {
	Name      string `json:"name"`
	StartedAt string `json:"started-at"`
	Version   struct {
		Version   string `json:"version"`
		GitCommit string `json:"git-commit"`
		GitState  string `json:"git-state"`
		BuildDate string `json:"build-date"`
	} `json:"version"`
	Policy struct {
		NetworkID       string `json:"network-id"`
		OperationsLimit int    `json:"operations-limit"`
		RateLimit       string `json:"rate-limit"`
		HTTPCache       string `json:"http-cache"`
	} `json:"policy"`
}
