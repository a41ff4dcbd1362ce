// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// Default accounts created by the seed.
const (
	AdminEmail    = "admin@visualcreativa.com"
	AdminPassword = "Admin123!"
	UserPassword  = "User123!"
)

// SurveyCount is how many sample surveys are generated.
const SurveyCount = 50

// Run fills an empty database with sample users, clients, projects in every
// stage, tasks, links and surveys. It does nothing when users already exist.
func Run(ctx context.Context, repos *repository.Repositories) error {
	log := logger.With("seed")

	users, err := repos.UserRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	if len(users) > 0 {
		log.Info().Msg("data already exists, skipping")
		return nil
	}

	log.Info().Msg("creating initial data")

	if err := seedUsers(ctx, repos); err != nil {
		return err
	}

	clients, err := seedClients(ctx, repos)
	if err != nil {
		return err
	}

	if err := seedProjects(ctx, repos, clients); err != nil {
		return err
	}

	if err := seedSurveys(ctx, repos, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
		return err
	}

	log.Info().
		Str("admin", AdminEmail+" / "+AdminPassword).
		Str("users", "user1@visualcreativa.com, user2@visualcreativa.com / "+UserPassword).
		Msg("seed completed")
	return nil
}

// ============================================
// USERS
// ============================================

func seedUsers(ctx context.Context, repos *repository.Repositories) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte(UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []*repository.User{
		{Name: "Admin Visual Creativa", Email: AdminEmail, Password: string(adminHash), Role: types.RoleAdmin},
		{Name: "María González", Email: "user1@visualcreativa.com", Password: string(userHash), Role: types.RoleUser},
		{Name: "Carlos Rodríguez", Email: "user2@visualcreativa.com", Password: string(userHash), Role: types.RoleUser},
	}
	for _, u := range users {
		if err := repos.UserRepo.Create(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
	}
	return nil
}

// ============================================
// CLIENTS
// ============================================

func seedClients(ctx context.Context, repos *repository.Repositories) ([]*repository.Client, error) {
	clients := []*repository.Client{
		{
			Name:    "Netflix Latinoamérica",
			Company: stringPtr("Netflix Inc."),
			Email:   stringPtr("contacto@netflix.com"),
			Phone:   stringPtr("+52 55 1234 5678"),
			Notes:   stringPtr("Cliente premium - Proyectos de alto presupuesto"),
		},
		{
			Name:    "Coca-Cola México",
			Company: stringPtr("The Coca-Cola Company"),
			Email:   stringPtr("marketing@cocacola.mx"),
			Phone:   stringPtr("+52 55 8765 4321"),
			Notes:   stringPtr("Campañas publicitarias trimestrales"),
		},
		{
			Name:    "Spotify",
			Company: stringPtr("Spotify AB"),
			Email:   stringPtr("creative@spotify.com"),
			Phone:   stringPtr("+1 555 0123"),
			Notes:   stringPtr("Contenido para artistas emergentes"),
		},
	}
	for _, c := range clients {
		if err := repos.ClientRepo.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("create client %s: %w", c.Name, err)
		}
	}
	return clients, nil
}

// ============================================
// PROJECTS, TASKS AND LINKS
// ============================================

type projectSeed struct {
	client      int
	name        string
	description string
	status      types.ProjectStatus
	due         string
	notes       string
	tasks       []taskSeed
	links       [][2]string
}

type taskSeed struct {
	title string
	done  bool
}

var projectSeeds = []projectSeed{
	{
		client: 0, name: `Serie Documental "Sabores de México"`,
		description: "Producción de 6 episodios sobre gastronomía mexicana",
		status:      types.StatusLead, due: "2025-03-15",
		notes: "Requiere equipo de 4K y drones",
	},
	{
		client: 1, name: "Campaña Verano 2025",
		description: "Spots publicitarios para TV y redes sociales",
		status:      types.StatusCotizacion, due: "2025-02-28",
		notes: "Presupuesto: $150,000 USD",
	},
	{
		client: 1, name: "Video Corporativo Aniversario",
		description: "Video institucional para 100 años de Coca-Cola",
		status:      types.StatusEnProduccion, due: "2025-04-20",
		notes: "Incluye entrevistas a ejecutivos",
		tasks: []taskSeed{
			{"Scouting de locaciones", true},
			{"Casting de actores", true},
			{"Grabación día 1", true},
			{"Grabación día 2", false},
			{"Post-producción", false},
		},
		links: [][2]string{{"Dailies Semana 1", "https://drive.google.com/dailies-week1"}},
	},
	{
		client: 2, name: `Videoclip "Nuevo Talento"`,
		description: "Producción de videoclip para artista emergente",
		status:      types.StatusEnProduccion, due: "2025-01-30",
		notes: "Locación: Estudio A",
		tasks: []taskSeed{
			{"Reunión con artista", true},
			{"Diseño de escenografía", true},
			{"Grabación", false},
			{"Edición y color grading", false},
		},
	},
	{
		client: 2, name: `Podcast Visual "Entre Notas"`,
		description: "Serie de 10 episodios con músicos latinos",
		status:      types.StatusEntregado, due: "2024-12-15",
		notes: "Proyecto completado exitosamente",
		links: [][2]string{
			{"Episodios finales", "https://drive.google.com/drive/folders/podcast-final"},
			{"Material RAW", "https://dropbox.com/raw-footage-podcast"},
		},
	},
	{
		client: 0, name: `Trailer "La Casa de las Flores 2"`,
		description: "Trailer promocional para nueva temporada",
		status:      types.StatusEntregado, due: "2024-11-30",
		notes: "Entregado antes de tiempo",
		links: [][2]string{{"Trailer 4K", "https://frame.io/trailer-casa-flores"}},
	},
}

func seedProjects(ctx context.Context, repos *repository.Repositories, clients []*repository.Client) error {
	for _, ps := range projectSeeds {
		due, err := time.Parse(time.DateOnly, ps.due)
		if err != nil {
			return err
		}
		project := &repository.Project{
			ClientID:    clients[ps.client].ID,
			Name:        ps.name,
			Description: stringPtr(ps.description),
			Status:      ps.status,
			DueDate:     &due,
			Notes:       stringPtr(ps.notes),
		}
		if err := repos.ProjectRepo.Create(ctx, project); err != nil {
			return fmt.Errorf("create project %s: %w", ps.name, err)
		}

		for _, ts := range ps.tasks {
			task := &repository.Task{ProjectID: project.ID, Title: ts.title, Done: ts.done}
			if err := repos.TaskRepo.Create(ctx, task); err != nil {
				return fmt.Errorf("create task %s: %w", ts.title, err)
			}
		}
		for _, ls := range ps.links {
			link := &repository.DeliverableLink{ProjectID: project.ID, Label: stringPtr(ls[0]), URL: ls[1]}
			if err := repos.LinkRepo.Create(ctx, link); err != nil {
				return fmt.Errorf("create link %s: %w", ls[1], err)
			}
		}
	}
	return nil
}

// ============================================
// SURVEYS
// ============================================

var surveyNames = []string{
	"Carlos Rodríguez", "María García", "José Martínez", "Ana López", "Francisco Fernández",
	"Laura Sánchez", "Antonio Pérez", "Carmen González", "Manuel Romero", "Isabel Torres",
	"David Ruiz", "Cristina Díaz", "Javier Moreno", "Elena Muñoz", "Miguel Álvarez",
	"Patricia Jiménez", "Pedro Hernández", "Lucía Navarro", "Alejandro Castro", "Marta Ortiz",
	"Daniel Rubio", "Sara Molina", "Pablo Delgado", "Andrea Morales", "Sergio Suárez",
	"Raquel Ortega", "Alberto Marín", "Natalia Sanz", "Rubén Iglesias", "Silvia Núñez",
	"Adrián Medina", "Beatriz Garrido", "Iván Santos", "Mónica Castillo", "Óscar Guerrero",
	"Teresa Lozano", "Víctor Ramírez", "Pilar Méndez", "Enrique Cruz", "Rosa Vázquez",
	"Fernando Ramos", "Dolores Gil", "Luis Serrano", "Amparo Blanco", "Ángel Herrera",
	"Concepción Aguilar", "Ramón Benítez", "Josefa Vargas", "Emilio Campos", "Mercedes Reyes",
}

var positiveComments = []string{
	"Excelente herramienta, muy intuitiva y fácil de usar.",
	"Me encanta el diseño moderno y la rapidez del sistema.",
	"Perfecto para gestionar proyectos, lo recomiendo 100%.",
	"La función de arrastrar y soltar es genial, facilita mucho el trabajo.",
	"Muy completo, tiene todo lo que necesito para mi negocio.",
	"Interfaz limpia y profesional, se nota la calidad.",
	"El sistema de notificaciones por email funciona de maravilla.",
	"Impresionante la velocidad de carga, todo es instantáneo.",
	"Ideal para equipos pequeños y medianos, muy recomendable.",
	"La organización por estados (Lead, Cotización, etc.) es muy práctica.",
}

var constructiveComments = []string{
	"Muy bueno en general, aunque me gustaría más opciones de personalización.",
	"Funciona bien, pero sería genial tener reportes más detallados.",
	"Buen sistema, aunque la curva de aprendizaje inicial es un poco pronunciada.",
	"Me gusta, pero echo de menos integración con otras herramientas.",
	"Cumple su función, aunque podría mejorar en la gestión de archivos.",
	"Buena experiencia, pero necesitaría más filtros en las búsquedas.",
	"Interesante propuesta, aunque algunos botones podrían ser más visibles.",
	"Funcional y útil, pero me gustaría poder exportar datos a Excel.",
}

var neutralComments = []string{
	"Cumple con lo esperado, es una herramienta sólida.",
	"Interesante sistema, aún lo estoy explorando.",
	"Buena opción para gestión de proyectos.",
	"Funciona correctamente, sin problemas hasta ahora.",
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.Intn(len(list))]
}

// GenerateSurveys builds n surveys with a mostly positive distribution:
// half very satisfied, a third satisfied, a tenth neutral, the rest unhappy.
// Every third respondent leaves an email.
func GenerateSurveys(rng *rand.Rand, n int) []*repository.Survey {
	surveys := make([]*repository.Survey, 0, n)
	for i := 0; i < n; i++ {
		name := surveyNames[i%len(surveyNames)]
		s := &repository.Survey{Name: stringPtr(name)}
		if i%3 == 0 {
			s.Email = stringPtr(strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com")
		}

		var comment string
		switch r := rng.Float64(); {
		case r < 0.5:
			s.SatisfactionRating = 5
			s.EaseOfUseRating = 4
			if rng.Float64() < 0.7 {
				s.EaseOfUseRating = 5
			}
			s.WouldRecommend = true
			comment = pick(rng, positiveComments)
		case r < 0.85:
			s.SatisfactionRating = 4
			s.EaseOfUseRating = 4
			if rng.Float64() >= 0.5 {
				s.EaseOfUseRating = 5
			}
			s.WouldRecommend = rng.Float64() < 0.9
			if rng.Float64() < 0.7 {
				comment = pick(rng, positiveComments)
			} else {
				comment = pick(rng, constructiveComments)
			}
		case r < 0.95:
			s.SatisfactionRating = 3
			s.EaseOfUseRating = 3
			s.WouldRecommend = rng.Float64() < 0.5
			if rng.Float64() < 0.5 {
				comment = pick(rng, neutralComments)
			} else {
				comment = pick(rng, constructiveComments)
			}
		default:
			s.SatisfactionRating = 1
			if rng.Float64() < 0.5 {
				s.SatisfactionRating = 2
			}
			s.EaseOfUseRating = 3
			if rng.Float64() < 0.5 {
				s.EaseOfUseRating = 2
			}
			comment = pick(rng, constructiveComments)
		}
		s.Comments = stringPtr(comment)
		surveys = append(surveys, s)
	}
	return surveys
}

func seedSurveys(ctx context.Context, repos *repository.Repositories, rng *rand.Rand) error {
	for _, s := range GenerateSurveys(rng, SurveyCount) {
		if err := repos.SurveyRepo.Create(ctx, s); err != nil {
			return fmt.Errorf("create survey: %w", err)
		}
	}
	return nil
}

func stringPtr(s string) *string {
	return &s
}
