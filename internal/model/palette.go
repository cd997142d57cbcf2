package model

// CategoryColors is the palette the UI offers for new categories. The
// remote ledger stores the color as opaque text, so any hex value is
// accepted on the wire; this list is only the suggested vocabulary.
var CategoryColors = []string{
	"#ef4444",
	"#f97316",
	"#eab308",
	"#22c55e",
	"#06b6d4",
	"#3b82f6",
	"#8b5cf6",
	"#ec4899",
	"#f59e0b",
	"#10b981",
	"#14b8a6",
	"#6366f1",
	"#a855f7",
	"#f43f5e",
	"#84cc16",
	"#f472b6",
}

// DefaultCategoryColor is used when a category is created without an
// explicit color.
var DefaultCategoryColor = CategoryColors[0]

// CategoryIcons groups the suggested icon names by theme. Icons are
// symbolic names resolved by the rendering layer; the ledger stores them
// as opaque text.
var CategoryIcons = map[string][]string{
	"food":      {"Utensils", "Coffee", "Pizza", "Hamburger", "Apple", "Wine", "Beer", "IceCream", "Cookie", "Cake"},
	"transport": {"Car", "Plane", "Train", "Bus", "Bike", "Ship", "Truck"},
	"home":      {"Home", "Building", "Hotel", "House", "Wrench", "Hammer", "Lightbulb", "Bed"},
	"work":      {"Briefcase", "Laptop", "Phone", "Printer", "Calculator"},
	"money":     {"Wallet", "CreditCard", "Banknote", "PiggyBank", "TrendingUp", "Coins"},
	"leisure":   {"Gamepad", "Music", "Film", "Book", "Camera", "Palette", "Dumbbell"},
}

// DefaultCategoryIcon is used when a category is created without an
// explicit icon.
const DefaultCategoryIcon = "Wallet"
