package customer

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
)

// Service переводит результаты репозитория в ответы домена клиентов.
type Service struct {
	repo   Repository
	logger *log.Entry
}

// NewService конструирует сервис клиентов.
func NewService(repo Repository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "customer-service")
	}
	return &Service{repo: repo, logger: logger}
}

// Get ищет клиента по идентификатору.
func (s *Service) Get(ctx context.Context, id int64) GetResponse {
	return dbresult.Match(s.repo.GetByID(ctx, id),
		func() GetResponse { return OperationFailure{} },
		func(c Customer) GetResponse { return Found{Customer: c} },
		func([]Customer) GetResponse {
			s.unexpected("get", dbresult.KindMany)
			return OperationFailure{}
		},
		func() GetResponse { return NotFound{} },
	)
}

// Insert сохраняет нового клиента.
func (s *Service) Insert(ctx context.Context, c Customer) InsertResponse {
	c.ID = 0
	return dbresult.Match(s.repo.Insert(ctx, c),
		func() InsertResponse { return OperationFailure{} },
		func(id int64) InsertResponse { return Inserted{ID: id} },
		func([]int64) InsertResponse {
			s.unexpected("insert", dbresult.KindMany)
			return OperationFailure{}
		},
		func() InsertResponse {
			s.unexpected("insert", dbresult.KindEmpty)
			return OperationFailure{}
		},
	)
}

// Delete удаляет клиента, если он существует.
func (s *Service) Delete(ctx context.Context, id int64) DeleteResponse {
	return dbresult.Match(s.repo.Delete(ctx, id),
		func() DeleteResponse { return OperationFailure{} },
		func(affected int64) DeleteResponse { return Deleted{Affected: affected} },
		func([]int64) DeleteResponse {
			s.unexpected("delete", dbresult.KindMany)
			return OperationFailure{}
		},
		func() DeleteResponse {
			s.unexpected("delete", dbresult.KindEmpty)
			return OperationFailure{}
		},
	)
}

// unexpected фиксирует ветку, которую репозиторий для этой формы вернуть не может.
func (s *Service) unexpected(operation string, kind dbresult.Kind) {
	s.logger.WithFields(log.Fields{
		"operation": operation,
		"result":    kind.String(),
	}).Error("repository returned result of unsupported shape")
}
