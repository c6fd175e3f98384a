package numbers

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

var platePrefixes = []string{"RAB", "RCA", "RBA", "RCB", "RAC", "RBC"}

const (
	PackagePrefix = "PKG"
	ServicePrefix = "SRV"
	PaymentPrefix = "PAY"
)

// Generator выдает номерные знаки и номера записей.
// Источник случайности и часы подменяются в тестах.
type Generator struct {
	intN func(n int) int
	now  func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{
		intN: rand.IntN,
		now:  time.Now,
	}
}

// NewGeneratorWith создает генератор с заданными источником случайности и часами
func NewGeneratorWith(intN func(n int) int, now func() time.Time) *Generator {
	return &Generator{intN: intN, now: now}
}

// PlateNumber генерирует руандийский номер вида "RAB 123A"
func (g *Generator) PlateNumber() string {
	prefix := platePrefixes[g.intN(len(platePrefixes))]
	digits := g.intN(900) + 100
	letter := rune('A' + g.intN(26))
	return fmt.Sprintf("%s %d%c", prefix, digits, letter)
}

// PackageNumber генерирует номер пакета вида PKG-2025-0042
func (g *Generator) PackageNumber() string {
	return g.recordNumber(PackagePrefix)
}

// ServiceNumber генерирует номер записи обслуживания вида SRV-2025-0042
func (g *Generator) ServiceNumber() string {
	return g.recordNumber(ServicePrefix)
}

// PaymentNumber генерирует номер платежа вида PAY-2025-0042
func (g *Generator) PaymentNumber() string {
	return g.recordNumber(PaymentPrefix)
}

func (g *Generator) recordNumber(prefix string) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, g.now().Year(), g.intN(9999))
}

// NormalizePlate приводит номерной знак к верхнему регистру и схлопывает пробелы
func NormalizePlate(plate string) string {
	return strings.Join(strings.Fields(strings.ToUpper(plate)), " ")
}
