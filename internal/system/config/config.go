/*
 * Copyright (c) 2025, RefugeHub. (https://www.refugehub.org).
 *
 * RefugeHub licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	JWTSecret          string   `yaml:"jwt_secret"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// DataSourceConfig holds the relational database (user accounts) connection settings.
type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DocumentStoreConfig holds the document database (consent records) connection settings.
type DocumentStoreConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type SchedulerConfig struct {
	DeletionReaperEnabled  bool `yaml:"deletion_reaper_enabled"`
	DeletionReaperInterval int  `yaml:"deletion_reaper_interval_minutes"`
}

type Config struct {
	Addr          AddrConfig          `yaml:"addr"`
	Log           LogConfig           `yaml:"log"`
	Auth          AuthConfig          `yaml:"auth"`
	DataSource    DataSourceConfig    `yaml:"datasource"`
	DocumentStore DocumentStoreConfig `yaml:"document_store"`
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
}
