// Command seed wipes the books table and loads the demo catalog.
package main

import (
	"log"
	"os"

	"github.com/ANUSHKA-GUPTA30/rebook-platform/domain/book"
	nanoid "github.com/jaevor/go-nanoid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type seedBook struct {
	Title     string
	Author    string
	Genre     book.Genre
	Condition book.Condition
	Location  string
	Owner     string
	ImageURL  string
}

var books = []seedBook{
	// Studying
	{"Concepts of Physics", "H.C. Verma", book.GenreStudying, book.ConditionGood, "Delhi", "Rahul", "https://covers.openlibrary.org/b/id/12386927-L.jpg"},
	{"Introduction to Algorithms", "Cormen", book.GenreStudying, book.ConditionWorn, "Mumbai", "Sneha", "https://covers.openlibrary.org/b/id/36630-L.jpg"},
	{"Organic Chemistry", "Morrison & Boyd", book.GenreStudying, book.ConditionFair, "Bangalore", "Amit", "https://covers.openlibrary.org/b/id/12537446-L.jpg"},
	{"Cracking the Coding Interview", "Gayle Laakmann", book.GenreStudying, book.ConditionNew, "Pune", "Priya", "https://covers.openlibrary.org/b/id/8254425-L.jpg"},
	{"Head First Java", "Kathy Sierra", book.GenreStudying, book.ConditionGood, "Hyderabad", "Vikram", "https://covers.openlibrary.org/b/id/36679-L.jpg"},
	{"Biology Class 11", "NCERT", book.GenreStudying, book.ConditionGood, "Chennai", "Anjali", "https://covers.openlibrary.org/b/id/8756853-L.jpg"},
	{"University Physics", "Young & Freedman", book.GenreStudying, book.ConditionNew, "Kolkata", "Rohan", "https://covers.openlibrary.org/b/id/10521873-L.jpg"},

	// Comic
	{"The Amazing Spider-Man", "Stan Lee", book.GenreComic, book.ConditionGood, "Mumbai", "Kabir", "https://covers.openlibrary.org/b/id/10600109-L.jpg"},
	{"Naruto Vol. 1", "Masashi Kishimoto", book.GenreComic, book.ConditionNew, "Delhi", "Aryan", "https://covers.openlibrary.org/b/id/8233370-L.jpg"},
	{"Tintin in Tibet", "Herge", book.GenreComic, book.ConditionWorn, "Bangalore", "Meera", "https://covers.openlibrary.org/b/id/8235212-L.jpg"},
	{"Batman: The Killing Joke", "Alan Moore", book.GenreComic, book.ConditionGood, "Pune", "Siddharth", "https://covers.openlibrary.org/b/id/8576472-L.jpg"},
	{"One Piece Vol. 1", "Eiichiro Oda", book.GenreComic, book.ConditionFair, "Chennai", "Luffy", "https://covers.openlibrary.org/b/id/7350732-L.jpg"},
	{"Asterix the Gaul", "Goscinny", book.GenreComic, book.ConditionGood, "Goa", "Tara", "https://covers.openlibrary.org/b/id/8766487-L.jpg"},
	{"Watchmen", "Alan Moore", book.GenreComic, book.ConditionWorn, "Delhi", "Rorschach", "https://covers.openlibrary.org/b/id/6497276-L.jpg"},

	// Playful
	{"Diary of a Wimpy Kid", "Jeff Kinney", book.GenrePlayful, book.ConditionGood, "Mumbai", "Greg", "https://covers.openlibrary.org/b/id/8584873-L.jpg"},
	{"Harry Potter and the Sorcerer's Stone", "J.K. Rowling", book.GenrePlayful, book.ConditionNew, "London", "Harry", "https://covers.openlibrary.org/b/id/10522812-L.jpg"},
	{"Charlie and the Chocolate Factory", "Roald Dahl", book.GenrePlayful, book.ConditionFair, "Bangalore", "Wonka", "https://covers.openlibrary.org/b/id/10492809-L.jpg"},
	{"The Cat in the Hat", "Dr. Seuss", book.GenrePlayful, book.ConditionGood, "USA", "Sam", "https://covers.openlibrary.org/b/id/8354719-L.jpg"},
	{"Geronimo Stilton", "Elisabetta Dami", book.GenrePlayful, book.ConditionNew, "Italy", "Mouse", "https://covers.openlibrary.org/b/id/8258287-L.jpg"},
	{"Matilda", "Roald Dahl", book.GenrePlayful, book.ConditionGood, "UK", "Trunchbull", "https://covers.openlibrary.org/b/id/7891724-L.jpg"},

	// Fiction
	{"The Alchemist", "Paulo Coelho", book.GenreFiction, book.ConditionGood, "Brazil", "Santiago", "https://covers.openlibrary.org/b/id/7360060-L.jpg"},
	{"The Great Gatsby", "F. Scott Fitzgerald", book.GenreFiction, book.ConditionWorn, "New York", "Nick", "https://covers.openlibrary.org/b/id/7222246-L.jpg"},
	{"To Kill a Mockingbird", "Harper Lee", book.GenreFiction, book.ConditionWorn, "Alabama", "Scout", "https://covers.openlibrary.org/b/id/1261770-L.jpg"},
	{"The Kite Runner", "Khaled Hosseini", book.GenreFiction, book.ConditionGood, "Kabul", "Amir", "https://covers.openlibrary.org/b/id/8231583-L.jpg"},
	{"Life of Pi", "Yann Martel", book.GenreFiction, book.ConditionNew, "Canada", "Pi", "https://covers.openlibrary.org/b/id/8367963-L.jpg"},

	// Classic
	{"Pride and Prejudice", "Jane Austen", book.GenreClassic, book.ConditionGood, "UK", "Elizabeth", "https://covers.openlibrary.org/b/id/8136357-L.jpg"},
	{"1984", "George Orwell", book.GenreClassic, book.ConditionFair, "London", "Winston", "https://covers.openlibrary.org/b/id/7222247-L.jpg"},
	{"Moby Dick", "Herman Melville", book.GenreClassic, book.ConditionWorn, "Sea", "Ahab", "https://covers.openlibrary.org/b/id/7222262-L.jpg"},
	{"War and Peace", "Leo Tolstoy", book.GenreClassic, book.ConditionWorn, "Russia", "Pierre", "https://covers.openlibrary.org/b/id/7222264-L.jpg"},
	{"The Odyssey", "Homer", book.GenreClassic, book.ConditionGood, "Greece", "Odysseus", "https://covers.openlibrary.org/b/id/8233373-L.jpg"},

	// Biography
	{"Steve Jobs", "Walter Isaacson", book.GenreBiography, book.ConditionNew, "California", "AppleFan", "https://covers.openlibrary.org/b/id/12555624-L.jpg"},
	{"Wings of Fire", "A.P.J. Abdul Kalam", book.GenreBiography, book.ConditionGood, "India", "Student", "https://covers.openlibrary.org/b/id/8254425-L.jpg"},
	{"Becoming", "Michelle Obama", book.GenreBiography, book.ConditionNew, "USA", "Reader", "https://covers.openlibrary.org/b/id/8336336-L.jpg"},
	{"The Diary of a Young Girl", "Anne Frank", book.GenreBiography, book.ConditionWorn, "Amsterdam", "Anne", "https://covers.openlibrary.org/b/id/10522812-L.jpg"},
	{"Elon Musk", "Ashlee Vance", book.GenreBiography, book.ConditionGood, "Texas", "Techie", "https://covers.openlibrary.org/b/id/12555624-L.jpg"},
}

func main() {
	dbPath := os.Getenv("REBOOK_BOOKS_DB_PATH")
	if dbPath == "" {
		dbPath = "rebook_books.db"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err := db.AutoMigrate(&book.Book{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	newID, err := nanoid.Standard(21)
	if err != nil {
		log.Fatalf("Failed to build id generator: %v", err)
	}

	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&book.Book{}).Error; err != nil {
		log.Fatalf("Failed to clear books table: %v", err)
	}

	rows := make([]book.Book, 0, len(books))
	for _, b := range books {
		rows = append(rows, book.Book{
			ID:        newID(),
			Title:     b.Title,
			Author:    b.Author,
			Genre:     b.Genre,
			Condition: b.Condition,
			Location:  b.Location,
			Owner:     b.Owner,
			ImageURL:  b.ImageURL,
			Status:    book.StatusAvailable,
		})
	}

	if err := db.Create(&rows).Error; err != nil {
		log.Fatalf("Failed to insert books: %v", err)
	}

	log.Printf("Seeded %d books into %s", len(rows), dbPath)
}
