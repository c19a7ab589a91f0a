package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/xavierca1/georges-crm-sync/internal/entity"
	"github.com/xavierca1/georges-crm-sync/internal/infra/integration/pipedrive"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type Config struct {
	Port           string
	UserStore      string
	MongoURL       string
	MongoDB        string
	DatabaseURL    string
	CRMBaseURL     string
	CRMAPIToken    string
	StageTableFile string
	LogLevel       string
	CorsOrigins    []string
}

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() (Config, error) {
	godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		UserStore:      strings.ToLower(getenv("USER_STORE", StoreMongo)),
		MongoURL:       getenv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "test"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		CRMBaseURL:     getenv("CRM_BASE_URL", pipedrive.DefaultBaseURL),
		CRMAPIToken:    os.Getenv("CRM_API_TOKEN"),
		StageTableFile: os.Getenv("STAGE_TABLE_FILE"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		CorsOrigins:    splitList(getenv("CORS_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.UserStore {
	case StoreMongo:
		if c.MongoURL == "" || c.MongoDB == "" {
			return fmt.Errorf("MONGO_URL e MONGO_DB são obrigatórios com USER_STORE=mongo")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatório com USER_STORE=postgres")
		}
	default:
		return fmt.Errorf("USER_STORE inválido: %q (use mongo ou postgres)", c.UserStore)
	}
	return nil
}

// StageDirectory usa a tabela padrão ou a do STAGE_TABLE_FILE.
func (c Config) StageDirectory() (*entity.StageDirectory, error) {
	if c.StageTableFile == "" {
		return entity.DefaultStageDirectory(), nil
	}
	return LoadStageDirectory(c.StageTableFile)
}

type stageTableFile struct {
	Pipelines map[string]map[string]int `toml:"pipelines"`
}

func LoadStageDirectory(path string) (*entity.StageDirectory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler tabela de stages: %w", err)
	}
	return ParseStageDirectory(string(raw))
}

// ParseStageDirectory lê um TOML no formato:
//
//	[pipelines.inbound]
//	identified_leads = 18
func ParseStageDirectory(data string) (*entity.StageDirectory, error) {
	var file stageTableFile
	if _, err := toml.Decode(data, &file); err != nil {
		return nil, fmt.Errorf("erro ao decodificar tabela de stages: %w", err)
	}

	table := make(entity.StageTable, len(file.Pipelines))
	for pipeline, stages := range file.Pipelines {
		table[entity.Pipeline(pipeline)] = make(map[entity.Stage]entity.StageID, len(stages))
		for stage, id := range stages {
			table[entity.Pipeline(pipeline)][entity.Stage(stage)] = entity.StageID(id)
		}
	}

	return entity.NewStageDirectory(table)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
