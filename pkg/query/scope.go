package query

import (
	"fmt"

	"github.com/mesh-intelligence/drafts/pkg/types"
)

// Scope is a deferred reference to the one transaction a session runs
// queries in. It is materialized on first use; from then on it always
// yields the same transaction, or the same failure. A Scope never begins a
// transaction except through the begin function its owner supplied, and
// never commits or aborts one.
type Scope struct {
	begin func() (types.Transaction, error)
	tx    types.Transaction
	err   error
	done  bool
}

// NewScope returns a scope that calls begin the first time a transaction
// is needed.
func NewScope(begin func() (types.Transaction, error)) *Scope {
	return &Scope{begin: begin}
}

// Bind returns a scope already materialized on tx.
func Bind(tx types.Transaction) *Scope {
	return &Scope{tx: tx, done: true}
}

// Transaction materializes the scope and returns its transaction.
func (s *Scope) Transaction() (types.Transaction, error) {
	if !s.done {
		s.done = true
		if s.begin == nil {
			s.err = fmt.Errorf("scope has no transaction source: %w", types.ErrInvalidArgument)
		} else {
			s.tx, s.err = s.begin()
		}
	}
	return s.tx, s.err
}

// Materialized reports whether the transaction has been requested.
func (s *Scope) Materialized() bool { return s.done }

// xrefOperator returns the scope's transaction as an XrefOperator.
func (s *Scope) xrefOperator() (types.XrefOperator, error) {
	tx, err := s.Transaction()
	if err != nil {
		return nil, err
	}
	op, ok := tx.(types.XrefOperator)
	if !ok {
		return nil, fmt.Errorf("transaction %s cannot manage external references: %w", tx.ID(), types.ErrUnsupported)
	}
	return op, nil
}
