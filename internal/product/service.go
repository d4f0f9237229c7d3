package product

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/purchasing/internal/dbresult"
)

// Service переводит результаты репозитория в ответы каталога.
type Service struct {
	repo   Repository
	logger *log.Entry
}

// NewService конструирует сервис товаров.
func NewService(repo Repository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "product-service")
	}
	return &Service{repo: repo, logger: logger}
}

// Get ищет товар по идентификатору.
func (s *Service) Get(ctx context.Context, id int64) GetResponse {
	return dbresult.Match(s.repo.GetByID(ctx, id),
		func() GetResponse { return OperationFailure{} },
		func(p Product) GetResponse { return Found{Product: p} },
		func([]Product) GetResponse {
			s.unexpected("get", dbresult.KindMany)
			return OperationFailure{}
		},
		func() GetResponse { return NotFound{} },
	)
}

// GetMany возвращает товары с указанными идентификаторами, которые есть в каталоге.
func (s *Service) GetMany(ctx context.Context, ids []int64) GetManyResponse {
	return dbresult.Match(s.repo.GetByIDs(ctx, ids),
		func() GetManyResponse { return OperationFailure{} },
		func(Product) GetManyResponse {
			s.unexpected("get_many", dbresult.KindSingle)
			return OperationFailure{}
		},
		func(ps []Product) GetManyResponse { return FoundMany{Products: ps} },
		func() GetManyResponse {
			s.unexpected("get_many", dbresult.KindEmpty)
			return OperationFailure{}
		},
	)
}

// Insert сохраняет новый товар.
func (s *Service) Insert(ctx context.Context, p Product) InsertResponse {
	p.ID = 0
	return dbresult.Match(s.repo.Insert(ctx, p),
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

// Delete удаляет товар, если он существует.
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

func (s *Service) unexpected(operation string, kind dbresult.Kind) {
	s.logger.WithFields(log.Fields{
		"operation": operation,
		"result":    kind.String(),
	}).Error("repository returned result of unsupported shape")
}
