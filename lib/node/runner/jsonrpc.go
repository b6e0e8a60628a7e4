package runner

import (
	"net/http"

	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/pollchain/lib/address"
	"boscoin.io/pollchain/lib/ballot"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/storage"
)

type EchoArgs string
type EchoResult string

// GetPollArgs finds the poll by Address, or by ID when Address is empty.
type GetPollArgs struct {
	ID      uint64          `json:"id"`
	Address address.Address `json:"address"`
}

type GetPollResult poll.Poll

// GetBallotArgs finds the ballot by Address, or by the poll and the voter
// when Address is empty.
type GetBallotArgs struct {
	Address address.Address `json:"address"`
	Poll    address.Address `json:"poll"`
	Voter   string          `json:"voter"`
}

type GetBallotResult ballot.Ballot

type PollAddressArgs uint64
type PollAddressResult address.Address

type BallotAddressArgs struct {
	Poll  address.Address `json:"poll"`
	Voter string          `json:"voter"`
}

type BallotAddressResult address.Address

// jsonrpcLedgerApp is the read only view of the ledger.
type jsonrpcLedgerApp struct {
	st *storage.LevelDBBackend
}

func (j *jsonrpcLedgerApp) Echo(r *http.Request, args *EchoArgs, result *EchoResult) error {
	*result = EchoResult(string(*args))
	return nil
}

func (j *jsonrpcLedgerApp) GetPoll(r *http.Request, args *GetPollArgs, result *GetPollResult) error {
	addr := args.Address
	if len(addr) < 1 {
		addr = address.PollAddress(args.ID)
	} else if !addr.IsValid() {
		return errors.BadRequestParameter.Clone().SetData("address", addr)
	}

	p, err := poll.Get(j.st, addr)
	if err != nil {
		return err
	}

	*result = GetPollResult(*p)
	return nil
}

func (j *jsonrpcLedgerApp) GetBallot(r *http.Request, args *GetBallotArgs, result *GetBallotResult) error {
	addr := args.Address
	if len(addr) < 1 {
		if !args.Poll.IsValid() || len(args.Voter) < 1 {
			return errors.BadRequestParameter.Clone().SetData("poll", args.Poll).SetData("voter", args.Voter)
		}
		addr = address.BallotAddress(args.Poll, args.Voter)
	} else if !addr.IsValid() {
		return errors.BadRequestParameter.Clone().SetData("address", addr)
	}

	b, err := ballot.Get(j.st, addr)
	if err != nil {
		return err
	}

	*result = GetBallotResult(*b)
	return nil
}

func (j *jsonrpcLedgerApp) PollAddress(r *http.Request, args *PollAddressArgs, result *PollAddressResult) error {
	*result = PollAddressResult(address.PollAddress(uint64(*args)))
	return nil
}

func (j *jsonrpcLedgerApp) BallotAddress(r *http.Request, args *BallotAddressArgs, result *BallotAddressResult) error {
	if !args.Poll.IsValid() {
		return errors.BadRequestParameter.Clone().SetData("poll", args.Poll)
	}

	*result = BallotAddressResult(address.BallotAddress(args.Poll, args.Voter))
	return nil
}

type jsonrpcInternalServer struct {
	*rpc.Server
}

func (s *jsonrpcInternalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set(
		"Access-Control-Allow-Headers",
		"Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization",
	)

	if r.Method == "OPTIONS" {
		return
	}

	s.Server.ServeHTTP(w, r)
}

// NewJSONRPCHandler serves the `Ledger` service.
func NewJSONRPCHandler(st *storage.LevelDBBackend) http.Handler {
	s := &jsonrpcInternalServer{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	if err := s.RegisterService(&jsonrpcLedgerApp{st: st}, "Ledger"); err != nil {
		panic(err)
	}

	return s
}
