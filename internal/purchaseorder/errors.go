package purchaseorder

import "errors"

var (
	// ErrOrderNotInserted — хранилище не смогло сохранить собранный заказ. Запрос прерывается.
	ErrOrderNotInserted = errors.New("could not insert order")
	// ErrUnexpectedResponse — внешний домен вернул вариант вне контракта (ошибка программирования).
	ErrUnexpectedResponse = errors.New("unexpected lookup response")
)
