// Package logger wraps a utxo.Store and logs every call made to it, with the callers that made it.
package logger

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mrlucciola/pow-blockchain/stores/utxo"
	"github.com/mrlucciola/pow-blockchain/ulogger"
)

const callerDepth = 3

type Store struct {
	logger ulogger.Logger
	store  utxo.Store
}

var _ utxo.Store = (*Store)(nil)

func New(logger ulogger.Logger, store utxo.Store) *Store {
	return &Store{
		logger: logger,
		store:  store,
	}
}

func caller() string {
	callers := make([]string, 0, callerDepth)

	for i := 0; i < callerDepth; i++ {
		pc, file, line, ok := runtime.Caller(2 + i)
		if !ok {
			break
		}

		funcName := runtime.FuncForPC(pc).Name()
		funcPaths := strings.Split(funcName, "/")
		funcName = funcPaths[len(funcPaths)-1]

		filePaths := strings.Split(file, "/")
		if len(filePaths) > 2 {
			file = strings.Join(filePaths[len(filePaths)-2:], "/")
		}

		callers = append(callers, fmt.Sprintf("called from %s: %s:%d", funcName, file, line))
	}

	return strings.Join(callers, ",")
}

func (s *Store) Health(ctx context.Context) (int, string, error) {
	status, msg, err := s.store.Health(ctx)
	s.logger.Infof("[UTXOStore][logger][Health] status %d msg %q err %v : %s", status, msg, err, caller())

	return status, msg, err
}

func (s *Store) Exists(ctx context.Context, hash chainhash.Hash) (bool, error) {
	exists, err := s.store.Exists(ctx, hash)
	s.logger.Infof("[UTXOStore][logger][Exists] utxo %s exists %t err %v : %s", hash, exists, err, caller())

	return exists, err
}

func (s *Store) Apply(ctx context.Context, spent []chainhash.Hash, created []chainhash.Hash) error {
	err := s.store.Apply(ctx, spent, created)
	s.logger.Infof("[UTXOStore][logger][Apply] spent %d, created %d, err %v : %s", len(spent), len(created), err, caller())

	for _, hash := range spent {
		s.logger.Debugf("[UTXOStore][logger][Apply] spent %s", hash)
	}

	for _, hash := range created {
		s.logger.Debugf("[UTXOStore][logger][Apply] created %s", hash)
	}

	return err
}

func (s *Store) Hashes(ctx context.Context) ([]chainhash.Hash, error) {
	hashes, err := s.store.Hashes(ctx)
	s.logger.Infof("[UTXOStore][logger][Hashes] %d hashes, err %v : %s", len(hashes), err, caller())

	return hashes, err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	count, err := s.store.Count(ctx)
	s.logger.Infof("[UTXOStore][logger][Count] %d, err %v : %s", count, err, caller())

	return count, err
}
