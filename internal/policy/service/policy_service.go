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

package service

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/refugehub/privacy-data-service/internal/policy/model"
	"github.com/refugehub/privacy-data-service/internal/system/cache"
	"github.com/refugehub/privacy-data-service/internal/system/config"
	"github.com/refugehub/privacy-data-service/internal/system/constants"
	errors2 "github.com/refugehub/privacy-data-service/internal/system/errors"
	"github.com/refugehub/privacy-data-service/internal/system/log"
)

const policyCacheKey = "privacy_policy"

// PolicyServiceInterface serves the published privacy policy document.
type PolicyServiceInterface interface {
	GetPolicy() (*model.PolicyDocument, error)
}

// PolicyService loads the policy document from the deployment directory and
// caches it. Deployments without a policy file get the built-in default.
type PolicyService struct {
	cache    *cache.Cache
	filePath string
}

// GetPolicyService returns a service reading the deployed policy document.
func GetPolicyService() PolicyServiceInterface {

	return &PolicyService{
		cache:    cache.NewCache(10 * time.Minute),
		filePath: path.Join(config.GetPDSRuntime().PDSHome, constants.PrivacyPolicyFilePath),
	}
}

// NewPolicyService returns a service reading the given policy file.
func NewPolicyService(filePath string) PolicyServiceInterface {

	return &PolicyService{
		cache:    cache.NewCache(10 * time.Minute),
		filePath: filePath,
	}
}

// GetPolicy returns the current privacy policy document.
func (ps *PolicyService) GetPolicy() (*model.PolicyDocument, error) {

	if cached, found := ps.cache.Get(policyCacheKey); found {
		if document, ok := cached.(*model.PolicyDocument); ok {
			return document, nil
		}
	}

	document, err := ps.loadPolicy()
	if err != nil {
		return nil, err
	}
	ps.cache.Set(policyCacheKey, document)
	return document, nil
}

// loadPolicy reads the policy document from disk, falling back to the
// built-in default when no file is deployed.
func (ps *PolicyService) loadPolicy() (*model.PolicyDocument, error) {

	logger := log.GetLogger()
	content, err := os.ReadFile(ps.filePath)
	if os.IsNotExist(err) {
		logger.Debug("No privacy policy document deployed, serving the default.")
		return defaultPolicy(), nil
	}
	if err != nil {
		return nil, errors2.NewServerError(errors2.FETCH_PRIVACY_POLICY, err)
	}

	var document model.PolicyDocument
	if err := yaml.Unmarshal(content, &document); err != nil {
		return nil, errors2.NewServerError(errors2.FETCH_PRIVACY_POLICY, err)
	}
	if document.Version == "" {
		document.Version = constants.DefaultPrivacyPolicyVersion
	}
	return &document, nil
}

func defaultPolicy() *model.PolicyDocument {

	return &model.PolicyDocument{
		Version:       constants.DefaultPrivacyPolicyVersion,
		LastUpdated:   "2025-06-01",
		EffectiveDate: "2025-06-15",
		Sections: []model.PolicySection{
			{
				Title:   "Data We Collect",
				Content: "We collect the information you provide when creating an account and using our services.",
			},
			{
				Title:   "How We Use Your Data",
				Content: "Your data is used to provide services, subject to the consents you have granted.",
			},
			{
				Title:   "Your Rights",
				Content: "You can export your data, change your consents, and request account deletion at any time.",
			},
		},
	}
}
