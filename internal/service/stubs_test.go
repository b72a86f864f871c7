package service

// In-memory repository stubs shared by the service tests. They mimic the GORM
// repositories closely enough for business-logic tests: clones on write,
// gorm.ErrRecordNotFound on miss, newest-first listings.

import (
	"context"
	"sort"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func adminActor() *model.Usuario {
	return &model.Usuario{ID: uuid.New(), Nome: "Admin", Email: "admin@test.com", Funcao: "admin"}
}

func moderatorActor() *model.Usuario {
	return &model.Usuario{ID: uuid.New(), Nome: "Mod", Email: "mod@test.com", Funcao: "moderator"}
}

func employeeActor() *model.Usuario {
	return &model.Usuario{ID: uuid.New(), Nome: "Emp", Email: "emp@test.com", Funcao: "employee"}
}

func ptr[T any](v T) *T { return &v }

// ── ProductRepository stub ───────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) seed(name string, price string, stock int) *model.Product {
	p := &model.Product{
		ID:            uuid.New(),
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		CreatedAt:     time.Now(),
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProductRepo) ListRecent(ctx context.Context, limit int) ([]model.Product, error) {
	out, _ := r.List(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cloned := *p
	r.products[p.ID] = &cloned
	return nil
}

func (r *stubProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.StockQuantity = stock
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── CustomerRepository stub ──────────────────────────────────────────────────

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) seed(name string) *model.Customer {
	c := &model.Customer{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	cloned := *c
	r.customers[c.ID] = &cloned
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) {
	out := make([]model.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCustomerRepo) ListRecent(ctx context.Context, limit int) ([]model.Customer, error) {
	out, _ := r.List(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	cloned := *c
	r.customers[c.ID] = &cloned
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// ── SaleRepository stub ──────────────────────────────────────────────────────

type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	items map[uuid.UUID][]model.SaleItem // keyed by sale ID

	// movements is shared with the cash movement stub so the reconcile query
	// can see both sides.
	movements *stubCashMovementRepo

	// beforeCreate, when set, runs just before a sale header is stored. Tests
	// use it to mutate state between checkout's verification and its writes.
	beforeCreate func()
}

func newStubSaleRepo(movements *stubCashMovementRepo) *stubSaleRepo {
	return &stubSaleRepo{
		sales:     make(map[uuid.UUID]*model.Sale),
		items:     make(map[uuid.UUID][]model.SaleItem),
		movements: movements,
	}
}

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	cloned := *s
	r.sales[s.ID] = &cloned
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *s
	cloned.Items = append([]model.SaleItem(nil), r.items[id]...)
	return &cloned, nil
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for id, s := range r.sales {
		cloned := *s
		cloned.Items = append([]model.SaleItem(nil), r.items[id]...)
		out = append(out, cloned)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubSaleRepo) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	out, _ := r.List(ctx)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sales, id)
	return nil
}

func (r *stubSaleRepo) CreateItems(_ context.Context, items []model.SaleItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		r.items[items[i].SaleID] = append(r.items[items[i].SaleID], items[i])
	}
	return nil
}

func (r *stubSaleRepo) ListItems(_ context.Context, saleID uuid.UUID) ([]model.SaleItem, error) {
	return append([]model.SaleItem(nil), r.items[saleID]...), nil
}

func (r *stubSaleRepo) DeleteItems(_ context.Context, saleID uuid.UUID) error {
	delete(r.items, saleID)
	return nil
}

func (r *stubSaleRepo) HasItemsForProduct(_ context.Context, productID uuid.UUID) (bool, error) {
	for _, items := range r.items {
		for _, item := range items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *stubSaleRepo) HasSalesForCustomer(_ context.Context, customerID uuid.UUID) (bool, error) {
	for _, s := range r.sales {
		if s.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSaleRepo) HasSalesForUser(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, s := range r.sales {
		if s.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubSaleRepo) SumCompletedBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.sales {
		if s.Status == "completed" && !s.CreatedAt.Before(from) && !s.CreatedAt.After(to) {
			total = total.Add(s.TotalAmount)
		}
	}
	return total, nil
}

func (r *stubSaleRepo) CountBetween(_ context.Context, from, to time.Time) (int64, error) {
	var count int64
	for _, s := range r.sales {
		if !s.CreatedAt.Before(from) && !s.CreatedAt.After(to) {
			count++
		}
	}
	return count, nil
}

func (r *stubSaleRepo) ListCompletedWithoutMovement(_ context.Context, olderThan time.Time, limit int) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range r.sales {
		if s.Status != "completed" || !s.CreatedAt.Before(olderThan) {
			continue
		}
		if r.movements != nil && r.movements.hasSaleMovement(s.ID) {
			continue
		}
		out = append(out, *s)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── CashMovementRepository stub ──────────────────────────────────────────────

type stubCashMovementRepo struct {
	movements map[uuid.UUID]*model.CashMovement
	// methods maps a sale ID to its payment method, for the by-date join.
	methods map[uuid.UUID]string
}

func newStubCashMovementRepo() *stubCashMovementRepo {
	return &stubCashMovementRepo{
		movements: make(map[uuid.UUID]*model.CashMovement),
		methods:   make(map[uuid.UUID]string),
	}
}

func (r *stubCashMovementRepo) hasSaleMovement(saleID uuid.UUID) bool {
	for _, m := range r.movements {
		if m.Type == model.MovementSale && m.SaleID != nil && *m.SaleID == saleID {
			return true
		}
	}
	return false
}

func (r *stubCashMovementRepo) saleMovement(saleID uuid.UUID) *model.CashMovement {
	for _, m := range r.movements {
		if m.SaleID != nil && *m.SaleID == saleID {
			return m
		}
	}
	return nil
}

func (r *stubCashMovementRepo) Create(_ context.Context, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cloned := *m
	r.movements[m.ID] = &cloned
	return nil
}

func (r *stubCashMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashMovement, error) {
	m, ok := r.movements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *m
	return &cloned, nil
}

func (r *stubCashMovementRepo) List(_ context.Context) ([]model.CashMovement, error) {
	out := make([]model.CashMovement, 0, len(r.movements))
	for _, m := range r.movements {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCashMovementRepo) ListByDate(_ context.Context, from, to time.Time) ([]repository.MovementWithMethod, error) {
	var out []repository.MovementWithMethod
	for _, m := range r.movements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		row := repository.MovementWithMethod{CashMovement: *m}
		if m.SaleID != nil {
			if method, ok := r.methods[*m.SaleID]; ok {
				row.PaymentMethod = &method
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCashMovementRepo) Update(_ context.Context, m *model.CashMovement) error {
	cloned := *m
	r.movements[m.ID] = &cloned
	return nil
}

func (r *stubCashMovementRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.movements, id)
	return nil
}

func (r *stubCashMovementRepo) DeleteBySaleID(_ context.Context, saleID uuid.UUID) error {
	for id, m := range r.movements {
		if m.SaleID != nil && *m.SaleID == saleID {
			delete(r.movements, id)
		}
	}
	return nil
}

func (r *stubCashMovementRepo) ExistsForSale(_ context.Context, saleID uuid.UUID) (bool, error) {
	return r.saleMovement(saleID) != nil, nil
}

func (r *stubCashMovementRepo) HasMovementsForUser(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, m := range r.movements {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.CashMovementRepository = (*stubCashMovementRepo)(nil)

// ── UsuarioRepository stub ───────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) seed(u *model.Usuario) *model.Usuario {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUsuarioRepo) FindByCredentials(_ context.Context, email, senha string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.Senha == senha {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByEmailExcluding(_ context.Context, email string, excludeID uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email && u.ID != excludeID {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	cloned := *u
	r.usuarios[u.ID] = &cloned
	return nil
}

func (r *stubUsuarioRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.usuarios, id)
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── session.Store stub ───────────────────────────────────────────────────────

type stubSessionStore struct {
	sessions map[string]*model.Usuario
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*model.Usuario)}
}

func (s *stubSessionStore) Put(_ context.Context, u *model.Usuario) (string, error) {
	token := uuid.NewString()
	cloned := *u
	s.sessions[token] = &cloned
	return token, nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*model.Usuario, error) {
	u, ok := s.sessions[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}
