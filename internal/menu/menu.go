// Package menu holds the static canteen catalog. Items are shipped with the
// binary and never mutated at runtime; orders snapshot the ones they contain.
package menu

import "github.com/smartcanteen/canteen-api/internal/models"

var items = []models.MenuItem{
	{ID: "1", Name: "Vada Pav", Description: "Spiced potato fritter in a soft bun with chutney", Price: 20, Category: "Snacks", Image: "/images/vada-pav.jpg"},
	{ID: "2", Name: "Samosa", Description: "Crisp pastry stuffed with peas and potato", Price: 15, Category: "Snacks", Image: "/images/samosa.jpg"},
	{ID: "3", Name: "Misal Pav", Description: "Sprouted bean curry topped with farsan, served with pav", Price: 50, Category: "Snacks", Image: "/images/misal-pav.jpg"},
	{ID: "4", Name: "Masala Dosa", Description: "Rice crepe with spiced potato filling and sambar", Price: 60, Category: "South Indian", Image: "/images/masala-dosa.jpg"},
	{ID: "5", Name: "Idli Sambar", Description: "Steamed rice cakes with sambar and coconut chutney", Price: 40, Category: "South Indian", Image: "/images/idli-sambar.jpg"},
	{ID: "6", Name: "Veg Thali", Description: "Two sabzis, dal, rice, chapati, salad and papad", Price: 90, Category: "Meals", Image: "/images/veg-thali.jpg"},
	{ID: "7", Name: "Paneer Rice", Description: "Fried rice tossed with paneer and vegetables", Price: 80, Category: "Meals", Image: "/images/paneer-rice.jpg"},
	{ID: "8", Name: "Chole Bhature", Description: "Chickpea curry with fried bread", Price: 70, Category: "Meals", Image: "/images/chole-bhature.jpg"},
	{ID: "9", Name: "Cutting Chai", Description: "Half glass of strong milky tea", Price: 10, Category: "Beverages", Image: "/images/cutting-chai.jpg"},
	{ID: "10", Name: "Cold Coffee", Description: "Blended iced coffee with milk", Price: 40, Category: "Beverages", Image: "/images/cold-coffee.jpg"},
	{ID: "11", Name: "Fresh Lime Soda", Description: "Sweet and salted lime soda", Price: 25, Category: "Beverages", Image: "/images/lime-soda.jpg"},
	{ID: "12", Name: "Gulab Jamun", Description: "Two pieces soaked in cardamom syrup", Price: 30, Category: "Desserts", Image: "/images/gulab-jamun.jpg"},
}

// Items returns the whole catalog, optionally narrowed to one category.
func Items(category string) []models.MenuItem {
	if category == "" {
		out := make([]models.MenuItem, len(items))
		copy(out, items)
		return out
	}
	var out []models.MenuItem
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}
