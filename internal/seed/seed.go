package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/bookbazaar/internal/models"
	"github.com/Skotchmaster/bookbazaar/internal/repo"
	"github.com/Skotchmaster/bookbazaar/pkg/hash"
)

const (
	AdminUsername = "admin"
	AdminPassword = "password123"
)

func img(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=450&q=80"
}

func sampleBooks() []models.Book {
	return []models.Book{
		{
			Title:            "To Kill a Mockingbird",
			Author:           "Harper Lee",
			Description:      "A classic of modern American literature, the novel explores the issues of racism and injustice in the American South through the eyes of Scout Finch.",
			Price:            12.99,
			Condition:        models.ConditionLikeNew,
			Format:           models.FormatPaperback,
			Category:         models.CategoryFiction,
			ImageURL:         img("1544947950-fa07a98d237f"),
			AdditionalImages: []string{img("1512820790803-83ca734da794"), img("1543002588-bfa74002ed7e")},
		},
		{
			Title:       "1984",
			Author:      "George Orwell",
			Description: "A dystopian novel that explores the dangers of totalitarianism, mass surveillance, and repressive regimentation of people and behaviors.",
			Price:       9.50,
			Condition:   models.ConditionVeryGood,
			Format:      models.FormatPaperback,
			Category:    models.CategoryFiction,
			ImageURL:    img("1589998059171-988d887df646"),
		},
		{
			Title:       "Pride and Prejudice",
			Author:      "Jane Austen",
			Description: "A romantic novel following the character development of Elizabeth Bennet, who learns about the repercussions of hasty judgments.",
			Price:       8.75,
			Condition:   models.ConditionGood,
			Format:      models.FormatPaperback,
			Category:    models.CategoryFiction,
			ImageURL:    img("1629992101753-56d196c8aabb"),
		},
		{
			Title:            "The Great Gatsby",
			Author:           "F. Scott Fitzgerald",
			Description:      "Set in the Jazz Age, the novel explores themes of decadence, idealism, and corruption through the story of self-made millionaire Jay Gatsby.",
			Price:            10.50,
			Condition:        models.ConditionLikeNew,
			Format:           models.FormatHardcover,
			Category:         models.CategoryFiction,
			ImageURL:         img("1621351183012-e2f9972dd9bf"),
			AdditionalImages: []string{img("1589829085413-56de8ae18c73"), img("1585158531004-3224babed121")},
		},
		{
			Title:            "Harry Potter and the Sorcerer's Stone",
			Author:           "J.K. Rowling",
			Description:      "The first book in the Harry Potter series, following a young wizard as he discovers his magical heritage and begins his education at Hogwarts.",
			Price:            15.99,
			Condition:        models.ConditionVeryGood,
			Format:           models.FormatHardcover,
			Category:         models.CategoryFantasy,
			ImageURL:         img("1603162525937-e5e3baef4d54"),
			AdditionalImages: []string{img("1600189261867-30e5ffe7b8da"), img("1609866138210-84bb689f0bc8")},
		},
		{
			Title:       "The Hobbit",
			Author:      "J.R.R. Tolkien",
			Description: "A fantasy novel following the quest of Bilbo Baggins as he sets out to win a share of the treasure guarded by Smaug the dragon.",
			Price:       11.25,
			Condition:   models.ConditionGood,
			Format:      models.FormatPaperback,
			Category:    models.CategoryFantasy,
			ImageURL:    img("1614332287897-cdc485fa562d"),
		},
		{
			Title:       "Brave New World",
			Author:      "Aldous Huxley",
			Description: "A dystopian novel that explores the dehumanizing effects of advanced technology and social engineering in a futuristic society.",
			Price:       7.50,
			Condition:   models.ConditionAcceptable,
			Format:      models.FormatPaperback,
			Category:    models.CategorySciFi,
			ImageURL:    img("1612969308146-066015efc293"),
		},
		{
			Title:       "The Catcher in the Rye",
			Author:      "J.D. Salinger",
			Description: "A novel that explores the themes of teenage alienation, innocence, and rebellion through the eyes of Holden Caulfield.",
			Price:       9.25,
			Condition:   models.ConditionVeryGood,
			Format:      models.FormatPaperback,
			Category:    models.CategoryFiction,
			ImageURL:    img("1633477189729-9290b3261d0a"),
		},
	}
}

// Load creates the admin account and the sample catalog unless the admin
// already exists, so it is safe to run against a persistent database.
func Load(ctx context.Context, r repo.Repository) (bool, error) {
	if _, err := r.GetUserByUsername(ctx, AdminUsername); err == nil {
		return false, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return false, err
	}

	hashed, err := hash.HashPassword(AdminPassword)
	if err != nil {
		return false, err
	}
	profile := "https://api.dicebear.com/6.x/avataaars/svg?seed=admin"

	err = r.Atomically(ctx, func(tx repo.Repository) error {
		admin := &models.User{
			Username:     AdminUsername,
			PasswordHash: hashed,
			Name:         "Admin User",
			Email:        "admin@example.com",
			ProfileImage: &profile,
		}
		if err := tx.CreateUser(ctx, admin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		for _, b := range sampleBooks() {
			b.SellerID = admin.ID
			b.InStock = true
			if err := tx.CreateBook(ctx, &b); err != nil {
				return fmt.Errorf("seed book %q: %w", b.Title, err)
			}
		}
		return nil
	})
	return err == nil, err
}
