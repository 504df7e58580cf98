package mongo

import (
	"context"
	"fmt"
	"sync"

	"marketplace-backend/internal/domain/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoUnitOfWork implements the Unit of Work pattern for MongoDB
type MongoUnitOfWork struct {
	client        *mongo.Client
	database      *mongo.Database
	session       mongo.Session
	mutex         sync.RWMutex
	inTransaction bool

	userRepo    repository.UserRepository
	vendorRepo  repository.VendorRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	walletRepo  repository.WalletRepository
}

// NewMongoUnitOfWork creates a new MongoDB unit of work
func NewMongoUnitOfWork(client *mongo.Client, database *mongo.Database) *MongoUnitOfWork {
	return &MongoUnitOfWork{
		client:   client,
		database: database,
	}
}

// Begin starts a new transaction
func (uow *MongoUnitOfWork) Begin(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.inTransaction {
		return fmt.Errorf("unit of work is already in transaction")
	}

	session, err := uow.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	if err := session.StartTransaction(); err != nil {
		session.EndSession(ctx)
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	uow.session = session
	uow.inTransaction = true

	uow.setTransactionForRepositories()

	return nil
}

// Commit commits the current transaction
func (uow *MongoUnitOfWork) Commit(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to commit")
	}

	if err := uow.session.CommitTransaction(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	uow.endTransaction(ctx)
	return nil
}

// Rollback rolls back the current transaction
func (uow *MongoUnitOfWork) Rollback(ctx context.Context) error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no active transaction to rollback")
	}

	if err := uow.session.AbortTransaction(ctx); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	uow.endTransaction(ctx)
	return nil
}

// UserRepository returns the user repository bound to this unit of work
func (uow *MongoUnitOfWork) UserRepository() repository.UserRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.userRepo == nil {
		uow.userRepo = NewMongoUserRepository(uow.database)
		uow.bindTransaction(uow.userRepo)
	}

	return uow.userRepo
}

// VendorRepository returns the vendor repository bound to this unit of work
func (uow *MongoUnitOfWork) VendorRepository() repository.VendorRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.vendorRepo == nil {
		uow.vendorRepo = NewMongoVendorRepository(uow.database)
		uow.bindTransaction(uow.vendorRepo)
	}

	return uow.vendorRepo
}

// ProductRepository returns the product repository bound to this unit of work
func (uow *MongoUnitOfWork) ProductRepository() repository.ProductRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.productRepo == nil {
		uow.productRepo = NewMongoProductRepository(uow.database)
		uow.bindTransaction(uow.productRepo)
	}

	return uow.productRepo
}

// OrderRepository returns the order repository bound to this unit of work
func (uow *MongoUnitOfWork) OrderRepository() repository.OrderRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.orderRepo == nil {
		uow.orderRepo = NewMongoOrderRepository(uow.database)
		uow.bindTransaction(uow.orderRepo)
	}

	return uow.orderRepo
}

// WalletRepository returns the wallet repository bound to this unit of work
func (uow *MongoUnitOfWork) WalletRepository() repository.WalletRepository {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.walletRepo == nil {
		uow.walletRepo = NewMongoWalletRepository(uow.database)
		uow.bindTransaction(uow.walletRepo)
	}

	return uow.walletRepo
}

// Close closes the unit of work and cleans up resources
func (uow *MongoUnitOfWork) Close() error {
	uow.mutex.Lock()
	defer uow.mutex.Unlock()

	if uow.inTransaction && uow.session != nil {
		ctx := context.Background()
		uow.session.AbortTransaction(ctx)
		uow.endTransaction(ctx)
	}

	return nil
}

// IsInTransaction returns whether the unit of work is in a transaction
func (uow *MongoUnitOfWork) IsInTransaction() bool {
	uow.mutex.RLock()
	defer uow.mutex.RUnlock()
	return uow.inTransaction
}

func (uow *MongoUnitOfWork) bindTransaction(repo interface{}) {
	if !uow.inTransaction {
		return
	}
	if transactionalRepo, ok := repo.(repository.TransactionalRepository); ok {
		transactionalRepo.SetTransaction(uow.session)
	}
}

// endTransaction cleans up transaction resources
func (uow *MongoUnitOfWork) endTransaction(ctx context.Context) {
	if uow.session != nil {
		uow.session.EndSession(ctx)
		uow.session = nil
	}
	uow.inTransaction = false

	uow.clearTransactionFromRepositories()
}

func (uow *MongoUnitOfWork) eachRepository(fn func(repo interface{})) {
	for _, repo := range []interface{}{uow.userRepo, uow.vendorRepo, uow.productRepo, uow.orderRepo, uow.walletRepo} {
		if repo != nil {
			fn(repo)
		}
	}
}

// setTransactionForRepositories sets transaction context for all repositories
func (uow *MongoUnitOfWork) setTransactionForRepositories() {
	uow.eachRepository(func(repo interface{}) {
		if transactionalRepo, ok := repo.(repository.TransactionalRepository); ok {
			transactionalRepo.SetTransaction(uow.session)
		}
	})
}

// clearTransactionFromRepositories clears transaction context from all repositories
func (uow *MongoUnitOfWork) clearTransactionFromRepositories() {
	uow.eachRepository(func(repo interface{}) {
		if transactionalRepo, ok := repo.(repository.TransactionalRepository); ok {
			transactionalRepo.SetTransaction(nil)
		}
	})
}

// MongoUnitOfWorkFactory creates MongoDB unit of work instances
type MongoUnitOfWorkFactory struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoUnitOfWorkFactory creates a new MongoDB unit of work factory
func NewMongoUnitOfWorkFactory(client *mongo.Client, database *mongo.Database) *MongoUnitOfWorkFactory {
	return &MongoUnitOfWorkFactory{
		client:   client,
		database: database,
	}
}

// CreateUnitOfWork creates a new unit of work instance
func (f *MongoUnitOfWorkFactory) CreateUnitOfWork() repository.UnitOfWork {
	return NewMongoUnitOfWork(f.client, f.database)
}
