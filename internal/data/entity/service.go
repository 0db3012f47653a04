package entity

// Service is immutable reference data. Price and Duration keep the display
// text; Amount, Currency and DurationMinutes are derived once when the
// catalog is loaded.
type Service struct {
	Timestamps
	ID              string  `db:"id" yaml:"id"`
	Name            string  `db:"name" yaml:"name"`
	Duration        string  `db:"duration" yaml:"duration"`
	Price           string  `db:"price" yaml:"price"`
	Category        string  `db:"category" yaml:"category"`
	Description     *string `db:"description" yaml:"description,omitempty"`
	FemaleOnly      bool    `db:"female_only" yaml:"female_only"`
	Amount          float64 `db:"-" yaml:"-"`
	Currency        string  `db:"-" yaml:"-"`
	DurationMinutes int     `db:"-" yaml:"-"`
}

type Category struct {
	ID       string `db:"id" yaml:"id"`
	Name     string `db:"name" yaml:"name"`
	Position int    `db:"position" yaml:"position"`
}
