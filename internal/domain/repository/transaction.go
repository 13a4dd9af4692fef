package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to one specific
// transaction, so every operation inside Execute shares the same
// database connection.
type RepositoryFactory interface {
	// NewParcelRepository returns a ParcelRepository bound to the current transaction.
	NewParcelRepository() ParcelRepository

	// NewAddressRepository returns an AddressRepository bound to the current transaction.
	NewAddressRepository() AddressRepository

	// NewStatusUpdateRepository returns a StatusUpdateRepository bound to the current transaction.
	NewStatusUpdateRepository() StatusUpdateRepository

	// NewAgentRepository returns an AgentRepository bound to the current transaction.
	NewAgentRepository() AgentRepository
}
