package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine — позиция заказа. Инвариант: LineTotal == UnitPrice * Quantity;
// пересчёт происходит при конструировании и при изменении любого из
// сомножителей через SetQuantity/SetUnitPrice. Прямая запись в поля обходит
// пересчёт — изменять позиции нужно только через методы и полную замену
// коллекции строк у заказа (Order.ReplaceLines).
type OrderLine struct {
	Quantity  int             `json:"quantity"`
	ProductID uuid.UUID       `json:"productId"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// NewOrderLine создаёт позицию с пересчитанным итогом. Количество меньше
// единицы заменяется единицей (значение по умолчанию).
func NewOrderLine(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) OrderLine {
	if quantity < 1 {
		quantity = 1
	}
	line := OrderLine{
		Quantity:  quantity,
		ProductID: productID,
		UnitPrice: unitPrice,
	}
	line.recompute()
	return line
}

// SetQuantity меняет количество и пересчитывает итог позиции.
func (l *OrderLine) SetQuantity(quantity int) {
	l.Quantity = quantity
	l.recompute()
}

// SetUnitPrice меняет цену за единицу и пересчитывает итог позиции.
func (l *OrderLine) SetUnitPrice(price decimal.Decimal) {
	l.UnitPrice = price
	l.recompute()
}

// SetLineTotal перезаписывает итог без пересчёта и без проверки
// согласованности (last-write-wins).
func (l *OrderLine) SetLineTotal(total decimal.Decimal) {
	l.LineTotal = total
}

func (l *OrderLine) recompute() {
	l.LineTotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ClientSnapshot — денормализованная копия клиента, встроенная в заказ
// на момент оформления. Последующие правки клиента исторические заказы
// не затрагивают.
type ClientSnapshot struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// Order — заказ. Агрегаты TotalItems/TotalAmount поддерживаются
// консистентными единственным путём мутации — ReplaceLines; точечные правки
// отдельных позиций вне полной замены агрегаты не пересчитывают.
type Order struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId"`
	Client      ClientSnapshot  `json:"client"`
	Lines       []OrderLine     `json:"lines"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	IsDeleted   bool            `json:"isDeleted"`
}

// NewOrderID генерирует идентификатор заказа.
func NewOrderID() string {
	return uuid.NewString()
}

// ReplaceLines целиком заменяет список позиций и атомарно пересчитывает
// агрегаты: TotalItems = len(lines), TotalAmount = сумма LineTotal.
// nil трактуется как пустой список и даёт нулевые агрегаты.
func (o *Order) ReplaceLines(lines []OrderLine) {
	o.Lines = lines
	o.TotalItems = len(lines)

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	o.TotalAmount = total
}
