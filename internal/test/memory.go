package test

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/quoteflow/internal/domain/errors"
	"github.com/polkiloo/quoteflow/internal/domain/model"
	"github.com/polkiloo/quoteflow/internal/domain/repository"
)

// MemoryStore is an in-memory repository.UnitOfWork. A transaction works on
// the live data and restores a snapshot when its callback fails, which lets
// tests assert that failed use cases leave nothing behind.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data memoryData

	// FailOn may return an error to inject into the named operation, for
	// example "invoices.issue" or "orders.update".
	FailOn func(op string) error

	Commits   int
	Rollbacks int
}

type memoryData struct {
	customers   map[int64]model.Customer
	products    map[int64]model.Product
	orders      map[int64]model.Order
	items       map[int64]model.OrderItem
	invoices    map[int64]model.Invoice
	commissions map[int64]model.DealerCommission
	wallets     map[int64]model.Wallet
	walletTxs   []model.WalletTransaction
	nextID      int64
}

func (d memoryData) clone() memoryData {
	return memoryData{
		customers:   maps.Clone(d.customers),
		products:    maps.Clone(d.products),
		orders:      maps.Clone(d.orders),
		items:       maps.Clone(d.items),
		invoices:    maps.Clone(d.invoices),
		commissions: maps.Clone(d.commissions),
		wallets:     maps.Clone(d.wallets),
		walletTxs:   slices.Clone(d.walletTxs),
		nextID:      d.nextID,
	}
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: memoryData{
		customers:   make(map[int64]model.Customer),
		products:    make(map[int64]model.Product),
		orders:      make(map[int64]model.Order),
		items:       make(map[int64]model.OrderItem),
		invoices:    make(map[int64]model.Invoice),
		commissions: make(map[int64]model.DealerCommission),
		wallets:     make(map[int64]model.Wallet),
	}}
}

var _ repository.UnitOfWork = (*MemoryStore)(nil)

// WithinTransaction serialises transactions and rolls back on error.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Customers() repository.CustomerRepository     { return memoryCustomers{s} }
func (s *MemoryStore) Products() repository.ProductRepository       { return memoryProducts{s} }
func (s *MemoryStore) Orders() repository.OrderRepository           { return memoryOrders{s} }
func (s *MemoryStore) Invoices() repository.InvoiceRepository       { return memoryInvoices{s} }
func (s *MemoryStore) Commissions() repository.CommissionRepository { return memoryCommissions{s} }
func (s *MemoryStore) Wallets() repository.WalletRepository         { return memoryWallets{s} }

func (s *MemoryStore) fail(op string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn(op)
}

func (s *MemoryStore) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

// AddCustomer seeds a customer and returns it with its assigned ID.
func (s *MemoryStore) AddCustomer(c model.Customer) model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.data.customers[c.ID] = c
	return c
}

// AddProduct seeds a catalog product and returns it with its assigned ID.
func (s *MemoryStore) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	s.data.products[p.ID] = p
	return p
}

// Order returns the stored order with its items.
func (s *MemoryStore) Order(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id]
	if !ok {
		return model.Order{}, false
	}
	o.Items = s.orderItems(id)
	return o, true
}

// Customer returns the stored customer.
func (s *MemoryStore) Customer(id int64) (model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.data.customers[id]
	return c, ok
}

// InvoiceCount reports how many invoices exist for the order.
func (s *MemoryStore) InvoiceCount(orderID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.invoices[orderID]; ok {
		return 1
	}
	return 0
}

// AllCommissions returns all stored commissions ordered by ID.
func (s *MemoryStore) AllCommissions() []model.DealerCommission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Collect(maps.Values(s.data.commissions))
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SeedCommission stores a commission row as is.
func (s *MemoryStore) SeedCommission(c model.DealerCommission) model.DealerCommission {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.data.commissions[c.ID] = c
	return c
}

func (s *MemoryStore) orderItems(orderID int64) []model.OrderItem {
	var items []model.OrderItem
	for _, item := range s.data.items {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

type memoryCustomers struct{ s *MemoryStore }

func (r memoryCustomers) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if err := r.s.fail("customers.create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *c
	stored.ID = r.s.id()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.s.data.customers[stored.ID] = stored
	return &stored, nil
}

func (r memoryCustomers) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if err := r.s.fail("customers.get"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.customers[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &c, nil
}

func (r memoryCustomers) UpdateInvoiceInfo(ctx context.Context, id int64, info model.InvoiceInfo) error {
	if err := r.s.fail("customers.update_invoice_info"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.customers[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	c.InvoiceInfo = info
	r.s.data.customers[id] = c
	return nil
}

type memoryProducts struct{ s *MemoryStore }

func (r memoryProducts) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	if err := r.s.fail("products.get"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[int64]model.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.data.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type memoryOrders struct{ s *MemoryStore }

func (r memoryOrders) Create(ctx context.Context, order *model.Order) error {
	if err := r.s.fail("orders.create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	order.ID = r.s.id()
	for i := range order.Items {
		order.Items[i].ID = r.s.id()
		order.Items[i].OrderID = order.ID
		r.s.data.items[order.Items[i].ID] = order.Items[i]
	}
	stored := *order
	stored.Items = nil
	r.s.data.orders[order.ID] = stored
	return nil
}

func (r memoryOrders) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if err := r.s.fail("orders.get"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o.Items = r.s.orderItems(id)
	return &o, nil
}

func (r memoryOrders) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return r.list(func(o model.Order) bool { return o.CustomerID == customerID }, true)
}

func (r memoryOrders) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.list(func(o model.Order) bool { return o.Status == status }, false)
}

func (r memoryOrders) list(match func(model.Order) bool, newestFirst bool) ([]model.Order, error) {
	if err := r.s.fail("orders.list"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Order
	for _, o := range r.s.data.orders {
		if match(o) {
			o.Items = r.s.orderItems(o.ID)
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memoryOrders) Update(ctx context.Context, order *model.Order) error {
	if err := r.s.fail("orders.update"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.orders[order.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	stored := *order
	stored.Items = nil
	r.s.data.orders[order.ID] = stored
	return nil
}

func (r memoryOrders) UpdateItems(ctx context.Context, items []model.OrderItem) error {
	if err := r.s.fail("orders.update_items"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range items {
		if _, ok := r.s.data.items[item.ID]; !ok {
			return domainErrors.ErrNotFound
		}
		r.s.data.items[item.ID] = item
	}
	return nil
}

type memoryInvoices struct{ s *MemoryStore }

func (r memoryInvoices) Issue(ctx context.Context, inv *model.Invoice) (*model.Invoice, bool, error) {
	if err := r.s.fail("invoices.issue"); err != nil {
		return nil, false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.data.invoices[inv.OrderID]; ok {
		return &existing, false, nil
	}
	for _, existing := range r.s.data.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return nil, false, domainErrors.ErrAlreadyExists
		}
	}
	stored := *inv
	stored.ID = r.s.id()
	r.s.data.invoices[stored.OrderID] = stored
	return &stored, true, nil
}

func (r memoryInvoices) GetByOrder(ctx context.Context, orderID int64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.data.invoices[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &inv, nil
}

type memoryCommissions struct{ s *MemoryStore }

func (r memoryCommissions) Create(ctx context.Context, c *model.DealerCommission) (*model.DealerCommission, bool, error) {
	if err := r.s.fail("commissions.create"); err != nil {
		return nil, false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.commissions {
		if existing.OrderID == c.OrderID {
			return &existing, false, nil
		}
	}
	stored := *c
	stored.ID = r.s.id()
	r.s.data.commissions[stored.ID] = stored
	return &stored, true, nil
}

func (r memoryCommissions) MarkPaid(ctx context.Context, ids []int64, reference string, at time.Time) ([]model.DealerCommission, error) {
	if err := r.s.fail("commissions.mark_paid"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var paid []model.DealerCommission
	for _, id := range ids {
		c, ok := r.s.data.commissions[id]
		if !ok || c.IsPaid {
			continue
		}
		paidAt := at
		c.IsPaid = true
		c.PaidAt = &paidAt
		c.PaymentReference = reference
		r.s.data.commissions[id] = c
		paid = append(paid, c)
	}
	return paid, nil
}

func (r memoryCommissions) ListByDealer(ctx context.Context, dealerID int64) ([]model.DealerCommission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.DealerCommission
	for _, c := range r.s.data.commissions {
		if c.DealerID == dealerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memoryWallets struct{ s *MemoryStore }

func (r memoryWallets) Get(ctx context.Context, customerID int64) (*model.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.data.wallets[customerID]
	if !ok {
		w = model.Wallet{CustomerID: customerID, Balance: decimal.Zero}
	}
	return &w, nil
}

func (r memoryWallets) Credit(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	return r.move(customerID, model.WalletCredit, amount, reference)
}

func (r memoryWallets) Debit(ctx context.Context, customerID int64, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	return r.move(customerID, model.WalletDebit, amount, reference)
}

func (r memoryWallets) move(customerID int64, kind model.WalletTransactionKind, amount decimal.Decimal, reference string) (*model.Wallet, error) {
	if err := r.s.fail("wallets." + string(kind)); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.data.wallets[customerID]
	if !ok {
		w = model.Wallet{CustomerID: customerID, Balance: decimal.Zero}
	}
	switch kind {
	case model.WalletCredit:
		w.Balance = w.Balance.Add(amount)
	case model.WalletDebit:
		if w.Balance.LessThan(amount) {
			return nil, domainErrors.ErrInsufficientFunds
		}
		w.Balance = w.Balance.Sub(amount)
	}
	now := time.Now()
	w.UpdatedAt = now
	r.s.data.wallets[customerID] = w
	r.s.data.walletTxs = append(r.s.data.walletTxs, model.WalletTransaction{
		ID:         r.s.id(),
		CustomerID: customerID,
		Kind:       kind,
		Amount:     amount,
		Reference:  reference,
		CreatedAt:  now,
	})
	return &w, nil
}

func (r memoryWallets) ListTransactions(ctx context.Context, customerID int64) ([]model.WalletTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.WalletTransaction
	for i := len(r.s.data.walletTxs) - 1; i >= 0; i-- {
		if tx := r.s.data.walletTxs[i]; tx.CustomerID == customerID {
			out = append(out, tx)
		}
	}
	return out, nil
}
