package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"facestudio/config"
	"facestudio/database"
	"facestudio/database/repository"
	"facestudio/models"
	"facestudio/services/content"
	"facestudio/services/user"
	"facestudio/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	pflag.Int("treatments", 8, "number of sample treatments")
	pflag.Int("articles", 6, "number of sample blog posts and of education courses")
	pflag.String("admin-username", "admin", "username of the bootstrap admin")
	pflag.String("admin-password", "", "create the bootstrap admin with this password when set")
	pflag.Parse()

	config.LoadConfig()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatalf("seed: bind flags: %v", err)
	}
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.ConnectPostgres(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Fatal("seed: connect postgres", zap.Error(err))
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("seed: apply schema", zap.Error(err))
	}

	repos, err := repository.NewRepositories(pool, nil)
	if err != nil {
		logger.Fatal("seed: repositories", zap.Error(err))
	}

	gofakeit.Seed(time.Now().UnixNano())

	// Seeding goes through the services so validation and slug rules apply.
	contentService := &content.DefaultContentService{
		Treatments: repos.Treatments,
		Articles:   repos.Articles,
		Logger:     logger,
	}

	if password := viper.GetString("admin-password"); password != "" {
		if err := seedAdmin(ctx, repos, viper.GetString("admin-username"), password); err != nil {
			logger.Fatal("seed: admin", zap.Error(err))
		}
	}

	n := seedTreatments(ctx, contentService, viper.GetInt("treatments"))
	logger.Info("seed: treatments created", zap.Int("count", n))

	for _, kind := range []models.ArticleKind{models.KindBlog, models.KindEducation} {
		n := seedArticles(ctx, contentService, kind, viper.GetInt("articles"))
		logger.Info("seed: articles created", zap.String("kind", string(kind)), zap.Int("count", n))
	}
	logger.Info("seed complete")
}

func seedAdmin(ctx context.Context, repos *repository.Repositories, username, password string) error {
	users := &user.DefaultUserService{Repo: repos.Users, TokenTTL: time.Hour}
	resp, err := users.Register(ctx, models.RegistrationRequest{
		Username:  username,
		Email:     config.AppConfig.AdminEmail,
		FirstName: "Naomi",
		LastName:  "Admin",
		Mobile:    "+385 91 000 0000",
		Password:  password,
	})
	if errors.Is(err, user.ErrUserExists) {
		utils.GetLogger().Info("seed: admin already exists", zap.String("username", username))
		return nil
	}
	if err != nil {
		return err
	}
	_, err = users.SetRole(ctx, resp.User.ID, models.RoleAdmin)
	return err
}

// Sample vocabulary; gofakeit picks and combines it so every run differs.
var (
	treatmentNames = [][2]string{
		{"Hidratantni tretman lica", "Hydrating facial"},
		{"Dubinsko čišćenje lica", "Deep cleansing facial"},
		{"Kemijski piling", "Chemical peel"},
		{"Mikrodermoabrazija", "Microdermabrasion"},
		{"Anti-age tretman", "Anti-ageing treatment"},
		{"Laminacija obrva", "Brow lamination"},
		{"Lifting trepavica", "Lash lift"},
		{"Masaža lica", "Facial massage"},
	}
	articleTopics = [][2]string{
		{"Njega kože zimi", "Winter skin care"},
		{"Kako odabrati serum", "Choosing the right serum"},
		{"Osnove tretmana lica", "Facial treatment basics"},
		{"Zaštita od sunca", "Sun protection"},
		{"Rutina za osjetljivu kožu", "A routine for sensitive skin"},
		{"Tečaj masaže lica", "Facial massage course"},
	}
	phrases = [][2]string{
		{"Koža ostaje svježa i njegovana.", "Skin stays fresh and nourished."},
		{"Prilagođeno svakom tipu kože.", "Tailored to every skin type."},
		{"Koristimo profesionalne proizvode.", "We use professional products."},
		{"Rezultati su vidljivi nakon prvog tretmana.", "Results are visible after the first session."},
		{"Opuštajuće iskustvo za lice i um.", "A relaxing experience for face and mind."},
	}
)

func pick(pairs [][2]string) (hr, en string) {
	p := pairs[gofakeit.Number(0, len(pairs)-1)]
	return p[0], p[1]
}

// text joins n random phrases, wrapped in <p> when html is set.
func text(n int, html bool) models.Localized {
	var hr, en strings.Builder
	for i := 0; i < n; i++ {
		h, e := pick(phrases)
		if html {
			h, e = "<p>"+h+"</p>", "<p>"+e+"</p>"
		} else if i > 0 {
			hr.WriteByte(' ')
			en.WriteByte(' ')
		}
		hr.WriteString(h)
		en.WriteString(e)
	}
	return models.Localized{HR: hr.String(), EN: en.String()}
}

func seedTreatments(ctx context.Context, svc content.ContentService, count int) int {
	created := 0
	for i := 0; i < count; i++ {
		titleHR, titleEN := pick(treatmentNames)
		t := &models.Treatment{
			Title:            models.Localized{HR: titleHR, EN: titleEN},
			Slug:             models.Localized{HR: slugify(titleHR, i), EN: slugify(titleEN, i)},
			ShortDescription: text(2, false),
			FullDescription:  text(4, true),
			DurationHours:    gofakeit.Number(0, 1),
			DurationMinutes:  []int{0, 15, 30, 45}[gofakeit.Number(0, 3)],
			PauseMinutes:     []int{0, 15}[gofakeit.Number(0, 1)],
			PriceCents:       int64(gofakeit.Number(30, 150)) * 100,
			IsActive:         true,
		}
		if t.TotalMinutes() == 0 {
			t.DurationMinutes = 45
		}
		if err := svc.CreateTreatment(ctx, t); err != nil {
			utils.GetLogger().Warn("seed: skipped treatment", zap.String("slug", t.Slug.HR), zap.Error(err))
			continue
		}
		created++
	}
	return created
}

func seedArticles(ctx context.Context, svc content.ContentService, kind models.ArticleKind, count int) int {
	created := 0
	for i := 0; i < count; i++ {
		titleHR, titleEN := pick(articleTopics)
		a := &models.Article{
			Kind:             kind,
			Title:            models.Localized{HR: titleHR, EN: titleEN},
			Slug:             models.Localized{HR: slugify(titleHR+" "+string(kind), i), EN: slugify(titleEN+" "+string(kind), i)},
			ShortDescription: text(2, false),
			FullDescription:  text(5, true),
			IsActive:         true,
		}
		if kind == models.KindEducation {
			price := int64(gofakeit.Number(150, 600)) * 100
			a.PriceCents = &price
			a.MetaDescription = a.ShortDescription
		}
		if err := svc.CreateArticle(ctx, a); err != nil {
			utils.GetLogger().Warn("seed: skipped article", zap.String("slug", a.Slug.HR), zap.Error(err))
			continue
		}
		created++
	}
	return created
}

// slugify keeps [a-z0-9] and folds everything else into single dashes; the
// index suffix keeps repeated fake words from colliding.
func slugify(s string, i int) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return fmt.Sprintf("%s-%d", strings.TrimRight(b.String(), "-"), i+1)
}
