// Configuration is loaded from a yaml file placed on the server and
// validated on startup. All values the handlers need are passed down
// explicitly, there is no package level configuration state.

package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

type DatabaseType string

const (
	Mysql    DatabaseType = "mysql"
	Inmemory DatabaseType = "inmemory"
)

type (
	Application struct {
		Service  ServiceConfig  `yaml:"service"`
		Server   ServerConfig   `yaml:"server"`
		Database DatabaseConfig `yaml:"database"`
		Security SecurityConfig `yaml:"security"`
		Logging  LoggingConfig  `yaml:"logging"`
	}

	ServiceConfig struct {
		Name string `yaml:"name"`
		// Plans maps a payable amount to the membership type it purchases.
		// Registration attempts with an amount not listed here are rejected.
		Plans []MembershipPlan `yaml:"plans"`
		Mpesa MpesaConfig      `yaml:"mpesa"`
	}

	MembershipPlan struct {
		Amount         int64  `yaml:"amount"`
		MembershipType string `yaml:"membership_type"`
	}

	MpesaConfig struct {
		BaseUrl          string `yaml:"base_url"`
		ConsumerKey      string `yaml:"consumer_key"`
		ConsumerSecret   string `yaml:"consumer_secret"`
		ShortCode        string `yaml:"short_code"`
		Passkey          string `yaml:"passkey"`
		CallbackUrl      string `yaml:"callback_url"`
		AccountReference string `yaml:"account_reference"`
		TransactionDesc  string `yaml:"transaction_desc"`
	}

	ServerConfig struct {
		BaseAddress  string `yaml:"address"`
		Port         int    `yaml:"port"`
		ReadTimeout  int    `yaml:"read_timeout_seconds"`
		WriteTimeout int    `yaml:"write_timeout_seconds"`
		IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	}

	DatabaseConfig struct {
		Use        DatabaseType `yaml:"use"`
		Username   string       `yaml:"username"`
		Password   string       `yaml:"password"`
		Database   string       `yaml:"database"`
		Parameters []string     `yaml:"parameters"`
	}

	SecurityConfig struct {
		Fixed FixedTokenConfig    `yaml:"fixed_token"`
		Oidc  OpenIdConnectConfig `yaml:"oidc"`
		Cors  CorsConfig          `yaml:"cors"`
	}

	FixedTokenConfig struct {
		Api string `yaml:"api"`
	}

	OpenIdConnectConfig struct {
		TokenCookieName    string   `yaml:"token_cookie_name"`
		TokenPublicKeysPEM []string `yaml:"token_public_keys_PEM"`
		AdminRole          string   `yaml:"admin_role"`
	}

	CorsConfig struct {
		DisableCors bool   `yaml:"disable"`
		AllowOrigin string `yaml:"allow_origin"`
	}

	LoggingConfig struct {
		Severity string `yaml:"severity"`
	}
)

func UnmarshalFromYamlConfiguration(file io.Reader) (*Application, error) {
	d := yaml.NewDecoder(file)
	d.KnownFields(true) // strict

	conf := &Application{}
	if err := d.Decode(conf); err != nil {
		return nil, err
	}

	return conf, nil
}
