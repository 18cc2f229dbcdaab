package storage

import "github.com/punchcard-cli/punchcard/internal/model"

// CredentialsRepo provides operations for the Credentials singleton.
type CredentialsRepo struct {
	db *DB
}

// NewCredentialsRepo creates a new credentials repository.
func NewCredentialsRepo(db *DB) *CredentialsRepo {
	return &CredentialsRepo{db: db}
}

// Get retrieves the stored credentials. A missing key yields empty
// (unconfigured) credentials, not an error.
func (r *CredentialsRepo) Get() (*model.Credentials, error) {
	creds := &model.Credentials{}
	err := r.db.Get(model.KeyCredentials, creds)
	if err == nil {
		return creds, nil
	}
	if !IsErrKeyNotFound(err) {
		return nil, err
	}
	return &model.Credentials{Key: model.KeyCredentials}, nil
}

// Save persists the credential pair. Last write wins.
func (r *CredentialsRepo) Save(apiKey, workspaceID string) error {
	return r.db.Set(model.NewCredentials(apiKey, workspaceID))
}

// Clear removes the stored credentials.
func (r *CredentialsRepo) Clear() error {
	err := r.db.Delete(model.KeyCredentials)
	if IsErrKeyNotFound(err) {
		return nil
	}
	return err
}
