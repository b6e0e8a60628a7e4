package runner

import (
	"strconv"
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/pollchain/lib/ballot"
	"boscoin.io/pollchain/lib/common"
	"boscoin.io/pollchain/lib/common/observer"
	"boscoin.io/pollchain/lib/errors"
	"boscoin.io/pollchain/lib/metrics"
	"boscoin.io/pollchain/lib/poll"
	"boscoin.io/pollchain/lib/storage"
	"boscoin.io/pollchain/lib/transaction"
	"boscoin.io/pollchain/lib/transaction/operation"
)

// ProgramRunner applies the operations of transactions to the ledger. Every
// transaction is executed in one storage transaction under a single writer
// lock, so an execution is committed entirely or not at all and concurrent
// executions never interleave.
type ProgramRunner struct {
	sync.Mutex

	st    *storage.LevelDBBackend
	conf  common.Config
	clock common.Clock
	log   logging.Logger
}

func NewProgramRunner(st *storage.LevelDBBackend, conf common.Config, clock common.Clock, logger logging.Logger) *ProgramRunner {
	if clock == nil {
		clock = common.SystemClock{}
	}
	if logger == nil {
		logger = log
	}

	return &ProgramRunner{
		st:    st,
		conf:  conf,
		clock: clock,
		log:   logger,
	}
}

func (pr *ProgramRunner) Storage() *storage.LevelDBBackend {
	return pr.st
}

func (pr *ProgramRunner) Config() common.Config {
	return pr.conf
}

func (pr *ProgramRunner) Clock() common.Clock {
	return pr.clock
}

// changes collects the records written by one execution; they are
// announced only after commit.
type changes struct {
	polls   []*poll.Poll
	ballots []*ballot.Ballot
}

func (c *changes) addPoll(p *poll.Poll) {
	for i, o := range c.polls {
		if o.Address == p.Address {
			c.polls[i] = p
			return
		}
	}
	c.polls = append(c.polls, p)
}

// Execute checks and applies tx. The returned receipt is stored under the
// transaction hash.
func (pr *ProgramRunner) Execute(tx transaction.Transaction) (receipt *transaction.Receipt, err error) {
	begin := time.Now()
	defer func() {
		result := metrics.ProgramResultSuccess
		if err != nil {
			result = metrics.ProgramResultFailure
		}
		metrics.Program.Transactions.With("result", result).Add(1)
		metrics.Program.ExecutionSeconds.Observe(time.Since(begin).Seconds())
	}()

	if err = tx.IsWellFormed(pr.conf); err != nil {
		pr.log.Debug("transaction is not well formed", "hash", tx.H.Hash, "error", err)
		return
	}

	if receipt, err = pr.commit(tx); err != nil {
		return
	}

	pr.log.Info("transaction applied", "hash", tx.H.Hash, "source", tx.B.Source, "operations", len(tx.B.Operations))

	return
}

// commit applies tx in a storage transaction. The events are triggered
// before the lock is released, so observers see the updates in commit order.
func (pr *ProgramRunner) commit(tx transaction.Transaction) (*transaction.Receipt, error) {
	pr.Lock()
	defer pr.Unlock()

	ts, err := pr.st.OpenTransaction()
	if err != nil {
		return nil, err
	}

	receipt, applied, err := pr.apply(ts, tx)
	if err != nil {
		if e := ts.Discard(); e != nil {
			pr.log.Error("failed to discard storage transaction", "error", e)
		}
		pr.log.Debug("transaction rejected", "hash", tx.H.Hash, "error", err)
		return nil, err
	}

	if err = ts.Commit(); err != nil {
		pr.log.Error("failed to commit storage transaction", "hash", tx.H.Hash, "error", err)
		return nil, err
	}

	pr.record(tx, receipt, applied)

	return receipt, nil
}

func (pr *ProgramRunner) apply(ts *storage.LevelDBBackend, tx transaction.Transaction) (*transaction.Receipt, *changes, error) {
	if exists, err := transaction.ExistsReceipt(ts, tx.H.Hash); err != nil {
		return nil, nil, err
	} else if exists {
		return nil, nil, errors.TransactionAlreadyExists.Clone().SetData("hash", tx.H.Hash)
	}

	now := pr.clock.Now()
	applied := &changes{}

	for i, op := range tx.B.Operations {
		if err := pr.applyOperation(ts, tx.B.Source, op, now, applied); err != nil {
			pr.log.Debug("operation failed", "hash", tx.H.Hash, "index", i, "type", op.H.Type, "error", err)
			return nil, nil, err
		}
	}

	receipt := transaction.NewReceipt(tx, common.FormatISO8601(now))
	if err := receipt.Save(ts); err != nil {
		return nil, nil, err
	}

	return receipt, applied, nil
}

func (pr *ProgramRunner) applyOperation(ts *storage.LevelDBBackend, caller string, op operation.Operation, now time.Time, applied *changes) error {
	switch body := op.B.(type) {
	case operation.CreatePoll:
		p, err := poll.Create(ts, body.PollID, body.Description, caller, now)
		if err != nil {
			return err
		}
		applied.addPoll(p)
	case operation.Vote:
		b, p, err := ballot.Cast(ts, body.Poll, caller, body.Option)
		if err != nil {
			return err
		}
		applied.ballots = append(applied.ballots, b)
		applied.addPoll(p)
	case operation.ClosePoll:
		p, err := poll.Close(ts, body.Poll, caller)
		if err != nil {
			return err
		}
		applied.addPoll(p)
	default:
		return errors.UnknownOperationType.Clone().SetData("type", op.H.Type)
	}

	return nil
}

func (pr *ProgramRunner) record(tx transaction.Transaction, receipt *transaction.Receipt, applied *changes) {
	for _, op := range tx.B.Operations {
		metrics.Program.Operations.With("type", string(op.H.Type)).Add(1)
		switch body := op.B.(type) {
		case operation.CreatePoll:
			metrics.Program.PollsCreated.Add(1)
		case operation.ClosePoll:
			metrics.Program.PollsClosed.Add(1)
		case operation.Vote:
			option := "no"
			if body.Option {
				option = "yes"
			}
			metrics.Program.Votes.With("option", option).Add(1)
		}
	}

	for _, p := range applied.polls {
		TriggerPollEvent(p)
	}
	for _, b := range applied.ballots {
		TriggerBallotEvent(b)
	}

	observer.ResourceObserver.Trigger(
		observer.NewConditions(
			observer.NewCondition(observer.Tx, observer.All),
			observer.NewCondition(observer.Tx, observer.Identifier, receipt.Hash),
			observer.NewCondition(observer.Tx, observer.Source, receipt.Source),
		).Event(),
		receipt,
	)
}

func TriggerPollEvent(p *poll.Poll) {
	observer.ResourceObserver.Trigger(
		observer.NewConditions(
			observer.NewCondition(observer.Poll, observer.All),
			observer.NewCondition(observer.Poll, observer.Identifier, strconv.FormatUint(p.ID, 10)),
			observer.NewCondition(observer.Poll, observer.Address, p.Address.String()),
			observer.NewCondition(observer.Poll, observer.Creator, p.Creator),
		).Event(),
		p,
	)
}

func TriggerBallotEvent(b *ballot.Ballot) {
	observer.ResourceObserver.Trigger(
		observer.NewConditions(
			observer.NewCondition(observer.Ballot, observer.All),
			observer.NewCondition(observer.Ballot, observer.Address, b.Address.String()),
			observer.NewCondition(observer.Ballot, observer.Voter, b.Voter),
			observer.NewCondition(observer.Ballot, observer.InPoll, b.Poll.String()),
		).Event(),
		b,
	)
}
