package catalog

import "github.com/shopspring/decimal"

func size(name string, price int64) ProductSize {
	return ProductSize{Name: name, Price: decimal.NewFromInt(price)}
}

// Seed returns the built-in menu written on first run.
func Seed() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Iced Milk Coffee",
			Description: "Best seller creamy iced coffee",
			Category:    "coffee",
			Image:       "iced-milk-coffee",
			Available:   true,
			Sizes: []ProductSize{
				size("12oz", 90),
				size("16oz", 110),
				size("22oz", 130),
			},
		},
		{
			ID:          "2",
			Name:        "Iced Salted Cream Coffee",
			Description: "Sweet and salty cream coffee",
			Category:    "coffee",
			Available:   true,
			Sizes: []ProductSize{
				size("16oz", 120),
				size("22oz", 140),
			},
		},
		{
			ID:          "3",
			Name:        "Iced Egg Cream Coffee",
			Description: "Classic egg cream soda",
			Category:    "coffee",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 120)},
		},
		{
			ID:          "4",
			Name:        "Hot Milk Coffee",
			Description: "Warm creamy milk coffee",
			Category:    "coffee",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 115)},
		},
		{
			ID:          "5",
			Name:        "Hot Salted Cream Coffee",
			Description: "Warm salty cream coffee",
			Category:    "coffee",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 115)},
		},
		{
			ID:          "6",
			Name:        "Hot Egg Cream Coffee",
			Description: "Warm classic egg cream",
			Category:    "coffee",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 115)},
		},
		{
			ID:          "7",
			Name:        "Iced Americano",
			Description: "Espresso with ice",
			Category:    "coffee",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 135)},
		},
		{
			ID:          "8",
			Name:        "Matcha Latte",
			Description: "Japanese green tea latte",
			Category:    "tea",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 80)},
		},
		{
			ID:          "9",
			Name:        "Salted Cream Matcha Latte",
			Description: "Matcha with salted cream",
			Category:    "tea",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 90)},
		},
		{
			ID:          "10",
			Name:        "Dirty Matcha",
			Description: "Matcha with espresso",
			Category:    "tea",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 130)},
		},
		{
			ID:          "11",
			Name:        "Tropical Fruit Tea",
			Description: "Fresh fruit infused tea",
			Category:    "tea",
			Available:   true,
			Sizes:       []ProductSize{size("16oz", 100)},
		},
		{
			ID:          "12",
			Name:        "Bánh Mì",
			Description: "Vietnamese sandwich",
			Category:    "meal",
			Available:   true,
			Sizes:       []ProductSize{size("1 sandwich", 125)},
		},
		{
			ID:          "13",
			Name:        "Chicken and Crab Soup",
			Description: "Savory soup with chicken and crab",
			Category:    "meal",
			Available:   true,
			Sizes:       []ProductSize{size("1 bowl", 125)},
		},
		{
			ID:          "14",
			Name:        "Chicken Vermicelli Bowl",
			Description: "Rice vermicelli with chicken",
			Category:    "meal",
			Available:   true,
			Sizes:       []ProductSize{size("1 bowl", 125)},
		},
		{
			ID:          "15",
			Name:        "Chicken Adobo",
			Description: "Filipino style chicken adobo",
			Category:    "meal",
			Available:   true,
			Sizes:       []ProductSize{size("1 bowl", 125)},
		},
		{
			ID:          "16",
			Name:        "Fresh Spring Rolls",
			Description: "Fresh vegetable spring rolls",
			Category:    "meal",
			Available:   true,
			Sizes:       []ProductSize{size("3 rolls", 125)},
		},
		{
			ID:          "17",
			Name:        "Tiramisu",
			Description: "Italian coffee dessert",
			Category:    "dessert",
			Available:   true,
			Sizes:       []ProductSize{size("1 slice", 125)},
		},
		{
			ID:          "18",
			Name:        "Panna Cotta",
			Description: "Italian cream dessert",
			Category:    "dessert",
			Available:   true,
			Sizes:       []ProductSize{size("1 cup", 125)},
		},
	}
}
