package main

type character struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Book       string `json:"book"`
	Collection string `json:"collection"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type categoryBook struct {
	ID         int         `json:"id"`
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	Characters []character `json:"characters"`
}

type book struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Collection string  `json:"collection"`
	BookNumber int     `json:"bookNumber"`
	Genre      int     `json:"genre"`
	Rating     float64 `json:"rating"`
}

var characters = []character{
	{ID: 1, Name: "Name1", Book: "Book1", Collection: "Collection1"},
	{ID: 2, Name: "Name2", Book: "Book2", Collection: "Collection2"},
	{ID: 3, Name: "Name3", Book: "Book3", Collection: "Collection3"},
}

var genres = []genre{
	{ID: 1, Name: "Genre1"},
	{ID: 2, Name: "Genre2"},
	{ID: 3, Name: "Genre3"},
}

var books = []book{
	{ID: 1, Title: "Title1", Author: "Author1", Collection: "Collection1", BookNumber: 1, Genre: 1, Rating: 1.1},
	{ID: 2, Title: "Title2", Author: "Author2", Collection: "Collection2", BookNumber: 2, Genre: 2, Rating: 2.2},
	{ID: 3, Title: "Title3", Author: "Author3", Collection: "Collection3", BookNumber: 3, Genre: 3, Rating: 3.3},
}

// categoryBooks ignores the category; every category lists the same books.
func categoryBooks() []categoryBook {
	return []categoryBook{
		{ID: 1, Title: "Title1", Author: "Author1", Characters: characters},
		{ID: 2, Title: "Title2", Author: "Author2", Characters: characters},
		{ID: 3, Title: "Title3", Author: "Author3", Characters: characters},
	}
}
