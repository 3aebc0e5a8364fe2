package domain

import "fmt"

// ActorKind тип инициатора мутации
type ActorKind string

const (
	ActorCustomer ActorKind = "customer"
	ActorAdmin    ActorKind = "admin"
	ActorSystem   ActorKind = "system"
)

// Actor инициатор мутации бронирования.
// Для пользователя и администратора хранится ID; анонимный клиент,
// действующий по токену бронирования, представлен customer с ID=0.
type Actor struct {
	Kind ActorKind
	ID   int64
}

// CustomerActor возвращает актора-клиента с известным ID
func CustomerActor(id int64) Actor {
	return Actor{Kind: ActorCustomer, ID: id}
}

// TokenActor возвращает анонимного клиента, действующего по токену
func TokenActor() Actor {
	return Actor{Kind: ActorCustomer}
}

// AdminActor возвращает актора-администратора
func AdminActor(id int64) Actor {
	return Actor{Kind: ActorAdmin, ID: id}
}

// SystemActor возвращает системного актора
func SystemActor() Actor {
	return Actor{Kind: ActorSystem}
}

// IsAdmin возвращает true для административного актора
func (a Actor) IsAdmin() bool {
	return a.Kind == ActorAdmin
}

// Label возвращает человекочитаемую метку для audit-записи
func (a Actor) Label() string {
	switch a.Kind {
	case ActorAdmin:
		return fmt.Sprintf("admin #%d", a.ID)
	case ActorCustomer:
		if a.ID > 0 {
			return fmt.Sprintf("customer #%d", a.ID)
		}
		return "customer"
	default:
		return "system"
	}
}
