package domain

import (
	"errors"
	"fmt"
)

// Kind identifies a concrete product table.
type Kind string

const (
	KindNotebook   Kind = "notebook"
	KindSmartphone Kind = "smartphone"
)

var (
	ErrUnknownKind     = errors.New("unknown product kind")
	ErrUnknownCategory = errors.New("category has no registered product kind")
)

// SpecRow is one (label, value accessor) pair of a kind's specification table.
type SpecRow struct {
	Label string
	Value func(Priceable) string
}

// KindInfo is the static description of one product kind: display label,
// the category slug its products live under, and the ordered rows of its
// specification table. Registered once at package init, read-only after.
type KindInfo struct {
	Kind         Kind
	Label        string
	CategorySlug string
	SpecRows     []SpecRow
}

var kinds = map[Kind]KindInfo{}

func register(info KindInfo) {
	if _, dup := kinds[info.Kind]; dup {
		panic(fmt.Sprintf("product kind %q registered twice", info.Kind))
	}
	kinds[info.Kind] = info
}

// KindByName resolves a kind identifier, e.g. from a URL segment.
func KindByName(name string) (KindInfo, error) {
	info, ok := kinds[Kind(name)]
	if !ok {
		return KindInfo{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return info, nil
}

// KindForCategorySlug maps a category to the kind counted and listed under it.
func KindForCategorySlug(slug string) (KindInfo, error) {
	for _, info := range kinds {
		if info.CategorySlug == slug {
			return info, nil
		}
	}
	return KindInfo{}, fmt.Errorf("%w: %q", ErrUnknownCategory, slug)
}

// Registered reports whether name identifies a known kind.
func Registered(name string) bool {
	_, ok := kinds[Kind(name)]
	return ok
}

func yesNo(b bool) string {
	if b {
		return "Да"
	}
	return "Нет"
}

func init() {
	register(KindInfo{
		Kind:         KindNotebook,
		Label:        "Ноутбук",
		CategorySlug: "notebooks",
		SpecRows: []SpecRow{
			{"Диагональ", func(p Priceable) string { return p.(Notebook).Diagonal }},
			{"Тип дисплея", func(p Priceable) string { return p.(Notebook).DisplayType }},
			{"Процессор", func(p Priceable) string { return p.(Notebook).Processor }},
			{"Оперативная память", func(p Priceable) string { return p.(Notebook).RAM }},
			{"Видеокарта", func(p Priceable) string { return p.(Notebook).Video }},
			{"Время работы от аккумулятора", func(p Priceable) string { return p.(Notebook).TimeWithoutCharge }},
		},
	})
	register(KindInfo{
		Kind:         KindSmartphone,
		Label:        "Смартфон",
		CategorySlug: "smartphones",
		SpecRows: []SpecRow{
			{"Диагональ", func(p Priceable) string { return p.(Smartphone).Diagonal }},
			{"Разрешение экрана", func(p Priceable) string { return p.(Smartphone).Resolution }},
			{"Процессор", func(p Priceable) string { return p.(Smartphone).Processor }},
			{"Оперативная память", func(p Priceable) string { return p.(Smartphone).RAM }},
			{"Объём аккумулятора", func(p Priceable) string { return p.(Smartphone).Accum }},
			{"Объём встроенной памяти", func(p Priceable) string { return p.(Smartphone).MemoryVolume }},
			{"Основная камера", func(p Priceable) string { return p.(Smartphone).MainCamera }},
			{"Фронтальная камера", func(p Priceable) string { return p.(Smartphone).FrontCamera }},
			{"Слот для карты памяти", func(p Priceable) string { return yesNo(p.(Smartphone).SD) }},
		},
	})
}
