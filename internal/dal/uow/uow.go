package uow

import (
	"context"

	iorder "github.com/gildedcart/shop/internal/dal/interfaces/order"
	iorderitem "github.com/gildedcart/shop/internal/dal/interfaces/orderitem"
	iuser "github.com/gildedcart/shop/internal/dal/interfaces/user"
	iuserprofile "github.com/gildedcart/shop/internal/dal/interfaces/userprofile"
	"github.com/gildedcart/shop/internal/dal/postgres"
	orderrepo "github.com/gildedcart/shop/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/gildedcart/shop/internal/dal/repositories/orderitem/postgres"
	userrepo "github.com/gildedcart/shop/internal/dal/repositories/user/postgres"
	userprofilerepo "github.com/gildedcart/shop/internal/dal/repositories/userprofile/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type unitOfWork struct {
	pool            *pgxpool.Pool
	tx              pgx.Tx
	orderRepo       iorder.PostgresRepository
	orderItemRepo   iorderitem.PostgresRepository
	userRepo        iuser.PostgresRepository
	userProfileRepo iuserprofile.PostgresRepository
}

func NewUnitOfWork(db *postgres.Client) *unitOfWork {
	return &unitOfWork{
		pool:            db.Pool(),
		orderRepo:       orderrepo.NewPostgresOrderRepository(db.Pool()),
		orderItemRepo:   orderitemrepo.NewPostgresOrderItemRepository(db.Pool()),
		userRepo:        userrepo.NewPostgresUserRepository(db.Pool()),
		userProfileRepo: userprofilerepo.NewPostgresUserProfileRepository(db.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorder.PostgresRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitem.PostgresRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) UserRepository() iuser.PostgresRepository {
	return u.userRepo
}

func (u *unitOfWork) UserProfileRepository() iuserprofile.PostgresRepository {
	return u.userProfileRepo
}

// Begin opens a transaction and rebinds the repositories onto it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.userRepo = userrepo.NewPostgresUserRepository(tx)
	u.userProfileRepo = userprofilerepo.NewPostgresUserProfileRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
