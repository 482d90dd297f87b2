package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	catIDs := seedCategories(db)
	seedProducts(db, catIDs)
	seedCustomers(db)
	seedSuppliers(db)

	log.Println("Seeding completed successfully!")
}

func seedCategories(db *sql.DB) map[string]string {
	names := []string{"Makanan", "Minuman", "Kebutuhan Rumah", "Perawatan Diri", "Alat Tulis"}

	fmt.Println("Seeding Categories...")
	ids := make(map[string]string, len(names))
	for _, name := range names {
		var id string
		err := db.QueryRow(`
			INSERT INTO categories (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id;
		`, name).Scan(&id)
		if err != nil {
			log.Printf("Failed to upsert category %s: %v", name, err)
			continue
		}
		ids[name] = id
	}
	return ids
}

func seedProducts(db *sql.DB, catIDs map[string]string) {
	products := []struct {
		SKU      string
		Name     string
		Category string
		Price    string
		Cost     string
		Stock    int
		Unit     string
	}{
		{"MIE-01", "Indomie Goreng", "Makanan", "3500", "2800", 120, "pcs"},
		{"MIE-02", "Indomie Soto", "Makanan", "3500", "2800", 80, "pcs"},
		{"BRS-05", "Beras Premium 5kg", "Makanan", "78000", "70000", 25, "sak"},
		{"GLA-01", "Gula Pasir 1kg", "Makanan", "17500", "15500", 40, "pcs"},
		{"TEH-01", "Teh Botol Sosro 450ml", "Minuman", "6000", "4500", 48, "btl"},
		{"AQU-06", "Aqua 600ml", "Minuman", "4000", "2900", 96, "btl"},
		{"KOP-01", "Kopi Kapal Api Sachet", "Minuman", "1500", "1100", 200, "pcs"},
		{"SAB-01", "Sabun Lifebuoy 85g", "Perawatan Diri", "4500", "3600", 60, "pcs"},
		{"ODL-01", "Pasta Gigi Pepsodent 190g", "Perawatan Diri", "14000", "11500", 30, "pcs"},
		{"DTR-01", "Deterjen Rinso 800g", "Kebutuhan Rumah", "24000", "20500", 18, "pcs"},
		{"TIS-01", "Tisu Paseo 250s", "Kebutuhan Rumah", "16000", "13000", 4, "pak"},
		{"PUL-01", "Pulpen Standard AE7", "Alat Tulis", "2500", "1700", 3, "pcs"},
	}

	fmt.Println("Seeding Products...")
	for _, p := range products {
		var categoryID sql.NullString
		if id, ok := catIDs[p.Category]; ok {
			categoryID = sql.NullString{String: id, Valid: true}
		} else {
			log.Printf("Missing category ID for %s", p.Category)
		}
		_, err := db.Exec(`
			INSERT INTO products (sku, name, category_id, price, cost, stock, unit)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (sku) DO UPDATE SET
				name = EXCLUDED.name,
				category_id = EXCLUDED.category_id,
				price = EXCLUDED.price,
				cost = EXCLUDED.cost,
				unit = EXCLUDED.unit,
				updated_at = now();
		`, p.SKU, p.Name, categoryID, p.Price, p.Cost, p.Stock, p.Unit)
		if err != nil {
			log.Printf("Failed to upsert product %s: %v", p.SKU, err)
		}
	}
}

func seedCustomers(db *sql.DB) {
	customers := []struct {
		Name  string
		Phone string
		Email string
	}{
		{"Budi Santoso", "081234567801", "budi@example.com"},
		{"Siti Aminah", "081234567802", "siti@example.com"},
		{"Andi Pratama", "081234567803", ""},
		{"Dewi Lestari", "081234567804", "dewi@example.com"},
	}

	fmt.Println("Seeding Customers...")
	for _, c := range customers {
		_, err := db.Exec(`
			INSERT INTO customers (name, phone, email)
			SELECT $1, $2, NULLIF($3, '')
			WHERE NOT EXISTS (SELECT 1 FROM customers WHERE phone = $2);
		`, c.Name, c.Phone, c.Email)
		if err != nil {
			log.Printf("Failed to seed customer %s: %v", c.Name, err)
		}
	}
}

func seedSuppliers(db *sql.DB) {
	suppliers := []struct {
		Name    string
		Contact string
		Phone   string
	}{
		{"PT Indofood Distribusi", "Hendra Wijaya", "0215550101"},
		{"CV Sumber Rejeki", "Indah Sari", "0215550102"},
		{"Toko Grosir Makmur", "Eko Kurniawan", "0215550103"},
	}

	fmt.Println("Seeding Suppliers...")
	for _, s := range suppliers {
		_, err := db.Exec(`
			INSERT INTO suppliers (name, contact_name, phone)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM suppliers WHERE name = $1);
		`, s.Name, s.Contact, s.Phone)
		if err != nil {
			log.Printf("Failed to seed supplier %s: %v", s.Name, err)
		}
	}
}
