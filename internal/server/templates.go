package server

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var tmplFS embed.FS

var (
	expensesTmpl    = template.Must(template.ParseFS(tmplFS, "templates/expenses.html"))
	restaurantsTmpl = template.Must(template.ParseFS(tmplFS, "templates/restaurants.html"))
)
