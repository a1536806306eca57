package pipeline

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

var rawHeader = []string{
	"Restaurant ID", "Restaurant Name", "Country Code", "City", "Address", "Locality",
	"Locality Verbose", "Longitude", "Latitude", "Cuisines", "Average Cost for two",
	"Currency", "Has Table booking", "Has Online delivery", "Is delivering now",
	"Switch to order menu", "Price range", "Aggregate rating", "Rating color",
	"Rating text", "Votes",
}

// fixtureRows: 7 rows read, 1 with a missing cuisine, 2 duplicates once the
// cuisine list is reduced, 4 kept.
func fixtureRows() [][]string {
	return [][]string{
		{"6710645", "Cantinho da Gula", "30", "Rio de Janeiro", "Rua Maria Eugênia, 300", "Humaitá", "Humaitá, Rio de Janeiro", "-43.1984", "-22.9556", "Italian, Pizza", "80", "Brazilian Real(R$)", "0", "0", "0", "0", "1", "4.9", "3F7E00", "Excellent", "112"},
		{"18241537", "Chili's", "1", "New Delhi", "Connaught Place", "Connaught Place", "Connaught Place, New Delhi", "77.2167", "28.6315", "North Indian, Mughlai", "1500", "Indian Rupees(Rs.)", "1", "1", "0", "0", "2", "4.1", "5BA829", "Very Good", "2034"},
		{"18241537", "Chili's", "1", "New Delhi", "Connaught Place", "Connaught Place", "Connaught Place, New Delhi", "77.2167", "28.6315", "North Indian, Mughlai", "1500", "Indian Rupees(Rs.)", "1", "1", "0", "0", "2", "4.1", "5BA829", "Very Good", "2034"},
		{"6600060", "Braseiro", "30", "Rio de Janeiro", "Praça Santos Dumont, 116", "Gávea", "Gávea, Rio de Janeiro", "-43.2272", "-22.9769", "", "120", "Brazilian Real(R$)", "0", "0", "0", "0", "3", "4.2", "5BA829", "Very Good", "291"},
		{"17284105", "Pizza Den", "216", "Albany", "123 Main St", "Downtown", "Downtown, Albany", "-84.1557", "31.5776", "American", "25", "Dollar($)", "0", "0", "0", "0", "4", "3.2", "CDD614", "Average", "34"},
		{"17284105", "Pizza Den", "216", "Albany", "123 Main St", "Downtown", "Downtown, Albany", "-84.1557", "31.5776", "American, Burger", "25", "Dollar($)", "0", "0", "0", "0", "4", "3.2", "CDD614", "Average", "34"},
		{"6104547", "The Old Pub", "215", "London", "1 Fleet St", "City of London", "City of London, London", "-0.1067", "51.5142", "British", "40", "Pounds(£)", "1", "0", "0", "0", "3", "2.1", "FF7800", "Poor", "57"},
	}
}

func writeRaw(t *testing.T, dir string, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, "raw.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()
	return writeRaw(t, dir, rawHeader, fixtureRows())
}
