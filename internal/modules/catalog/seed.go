package catalog

import "github.com/google/uuid"

var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://vendorhub/catalog"))

// ElectronicsCategoryID is the category of every seeded entry.
var ElectronicsCategoryID = uuid.NewSHA1(seedNamespace, []byte("category/electronics"))

// SeedID returns the stable id of the seeded entry with the given sku.
func SeedID(sku string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte("product/"+sku))
}

func seedProducts() []*GlobalProduct {
	entry := func(name, description, image, sku, barcode string) *GlobalProduct {
		return &GlobalProduct{
			ID:          SeedID(sku),
			Name:        name,
			CategoryID:  ElectronicsCategoryID,
			Description: description,
			ImageURL:    image,
			SKU:         sku,
			Barcode:     barcode,
			IsVerified:  true,
		}
	}
	return []*GlobalProduct{
		entry("iPhone 15 Pro", "Latest Apple flagship smartphone with A17 Pro chip",
			"https://images.unsplash.com/photo-1695048133142-1a20484d2569", "APPL-IP15P", "1234567890123"),
		entry("Samsung Galaxy S24", "Premium Android smartphone with AI features",
			"https://images.unsplash.com/photo-1610945415295-d9bbf067e59c", "SAMS-GS24", "1234567890124"),
		entry("Sony WH-1000XM5", "Industry-leading noise canceling headphones",
			"https://images.unsplash.com/photo-1546435770-a3e426bf472b", "SONY-WH1000XM5", "1234567890125"),
		entry(`MacBook Pro 14" M3`, "Professional laptop with M3 chip",
			"https://images.unsplash.com/photo-1517336714731-489689fd1ca8", "APPL-MBP14M3", "1234567890126"),
		entry("iPad Air", "Versatile tablet with M1 chip",
			"https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0", "APPL-IPADA", "1234567890127"),
	}
}
