package store

import (
	"context"
	"sort"
	"sync"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentStore")

// InMemoryDocumentStore is the fallback when sqlite cannot be opened, and
// the store double in tests. Records do not survive a restart.
type InMemoryDocumentStore struct {
	mutex   *sync.RWMutex
	records map[int64]docModel.DocumentRecord
	nextId  int64
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		mutex:   new(sync.RWMutex),
		records: make(map[int64]docModel.DocumentRecord),
		nextId:  1,
	}
}

func (store *InMemoryDocumentStore) SaveDocument(ctx context.Context, record docModel.DocumentRecord) (docModel.DocumentRecord, error) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	record.Id = store.nextId
	store.nextId++
	store.records[record.Id] = record
	inMemLogger.Debug("saved document record", "id", record.Id)
	return record, nil
}

func (store *InMemoryDocumentStore) ListDocuments(ctx context.Context) ([]docModel.DocumentRecord, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	records := make([]docModel.DocumentRecord, 0, len(store.records))
	for _, record := range store.records {
		records = append(records, record)
	}
	// newest first, id breaks created_at ties
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].Id > records[j].Id
	})
	return records, nil
}

func (store *InMemoryDocumentStore) GetDocument(ctx context.Context, id int64) (docModel.DocumentRecord, bool) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	record, found := store.records[id]
	return record, found
}

func (store *InMemoryDocumentStore) UpdateDocument(ctx context.Context, id int64, docType docModel.DocumentType, fields docModel.FieldMap) (docModel.DocumentRecord, bool) {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	record, found := store.records[id]
	if !found {
		return docModel.DocumentRecord{}, false
	}
	record.DocumentType = docType
	record.Fields = fields
	store.records[id] = record
	return record, true
}
