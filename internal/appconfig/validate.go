/*
Copyright 2025 The kedactl Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package appconfig

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/validation"
)

// DefaultNamespace is used when the document does not name a namespace.
const DefaultNamespace = "default"

// Rule identifies the validation rule a field violated.
type Rule string

const (
	RuleMissing          Rule = "missing"
	RuleMalformed        Rule = "malformed"
	RuleOutOfRange       Rule = "out-of-range"
	RuleUnsupportedValue Rule = "unsupported-value"
)

// ValidationError reports the first field that failed validation and the rule
// it violated. It is always caller-fixable and never reflects cluster state.
type ValidationError struct {
	Field  string
	Rule   Rule
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: field %q %s: %s", e.Field, e.Rule, e.Detail)
}

// Validate checks the raw document and, if every rule passes, returns the
// immutable ApplicationSpec. Checks run in a fixed order and stop at the
// first failure; no partial spec is ever returned.
func Validate(raw *RawConfig) (*ApplicationSpec, error) {
	if err := checkRequiredFields(raw); err != nil {
		return nil, err
	}
	if err := checkNames(raw); err != nil {
		return nil, err
	}
	if err := checkNumericBounds(raw); err != nil {
		return nil, err
	}
	quantities, err := checkResourceQuantities(raw)
	if err != nil {
		return nil, err
	}
	if err := checkScaler(raw); err != nil {
		return nil, err
	}

	spec := &ApplicationSpec{
		name:            raw.DeploymentName,
		namespace:       raw.Namespace,
		imageRepository: raw.Image,
		imageTag:        raw.Tag,
		cpuRequest:      quantities.cpuRequest,
		cpuLimit:        quantities.cpuLimit,
		memoryRequest:   quantities.memoryRequest,
		memoryLimit:     quantities.memoryLimit,
		port:            *raw.Port,
		minReplicas:     *raw.MinReplicas,
		maxReplicas:     *raw.MaxReplicas,
		scaler: Scaler{
			Kind:    raw.ScalerType,
			AuthRef: raw.ScalerAuthRef,
		},
		env: make(map[string]string, len(raw.EnvVars)),
	}
	if spec.namespace == "" {
		spec.namespace = DefaultNamespace
	}
	spec.scaler.Metadata = make(map[string]string, len(raw.ScalerConfig))
	for k, v := range raw.ScalerConfig {
		spec.scaler.Metadata[k] = v
	}
	for k, v := range raw.EnvVars {
		spec.env[k] = v
	}
	return spec, nil
}

func checkRequiredFields(raw *RawConfig) error {
	missing := func(field string) error {
		return &ValidationError{Field: field, Rule: RuleMissing, Detail: "required field is not set"}
	}
	switch {
	case raw.DeploymentName == "":
		return missing("deployment_name")
	case raw.Image == "":
		return missing("image")
	case raw.Tag == "":
		return missing("tag")
	case raw.CPURequest == "":
		return missing("cpu_request")
	case raw.CPULimit == "":
		return missing("cpu_limit")
	case raw.MemoryRequest == "":
		return missing("memory_request")
	case raw.MemoryLimit == "":
		return missing("memory_limit")
	case raw.Port == nil:
		return missing("port")
	case raw.MinReplicas == nil:
		return missing("min_replicas")
	case raw.MaxReplicas == nil:
		return missing("max_replicas")
	case raw.ScalerType == "":
		return missing("scaler_type")
	case len(raw.ScalerConfig) == 0:
		return missing("scaler_config")
	}
	return nil
}

func checkNames(raw *RawConfig) error {
	if errs := validation.IsDNS1123Label(raw.DeploymentName); len(errs) > 0 {
		return &ValidationError{
			Field:  "deployment_name",
			Rule:   RuleMalformed,
			Detail: fmt.Sprintf("%q is not a valid DNS label: %s", raw.DeploymentName, strings.Join(errs, "; ")),
		}
	}
	if raw.Namespace != "" {
		if errs := validation.IsDNS1123Label(raw.Namespace); len(errs) > 0 {
			return &ValidationError{
				Field:  "namespace",
				Rule:   RuleMalformed,
				Detail: fmt.Sprintf("%q is not a valid DNS label: %s", raw.Namespace, strings.Join(errs, "; ")),
			}
		}
	}
	return nil
}

func checkNumericBounds(raw *RawConfig) error {
	if *raw.MinReplicas < 0 {
		return &ValidationError{
			Field:  "min_replicas",
			Rule:   RuleOutOfRange,
			Detail: fmt.Sprintf("must be >= 0, got %d", *raw.MinReplicas),
		}
	}
	if *raw.MaxReplicas < 1 {
		return &ValidationError{
			Field:  "max_replicas",
			Rule:   RuleOutOfRange,
			Detail: fmt.Sprintf("must be >= 1, got %d", *raw.MaxReplicas),
		}
	}
	if *raw.MaxReplicas < *raw.MinReplicas {
		return &ValidationError{
			Field:  "max_replicas",
			Rule:   RuleOutOfRange,
			Detail: fmt.Sprintf("must be >= min_replicas (%d), got %d", *raw.MinReplicas, *raw.MaxReplicas),
		}
	}
	if errs := validation.IsValidPortNum(int(*raw.Port)); len(errs) > 0 {
		return &ValidationError{
			Field:  "port",
			Rule:   RuleOutOfRange,
			Detail: fmt.Sprintf("must be between 1 and 65535, got %d", *raw.Port),
		}
	}
	return nil
}

type resourceQuantities struct {
	cpuRequest, cpuLimit, memoryRequest, memoryLimit resource.Quantity
}

func checkResourceQuantities(raw *RawConfig) (resourceQuantities, error) {
	var out resourceQuantities
	for _, q := range []struct {
		field string
		value string
		dst   *resource.Quantity
	}{
		{"cpu_request", raw.CPURequest, &out.cpuRequest},
		{"cpu_limit", raw.CPULimit, &out.cpuLimit},
		{"memory_request", raw.MemoryRequest, &out.memoryRequest},
		{"memory_limit", raw.MemoryLimit, &out.memoryLimit},
	} {
		parsed, err := resource.ParseQuantity(q.value)
		if err != nil {
			return out, &ValidationError{
				Field:  q.field,
				Rule:   RuleMalformed,
				Detail: fmt.Sprintf("%q is not a valid resource quantity: %v", q.value, err),
			}
		}
		*q.dst = parsed
	}
	if out.cpuRequest.Cmp(out.cpuLimit) > 0 {
		return out, &ValidationError{
			Field:  "cpu_request",
			Rule:   RuleOutOfRange,
			Detail: fmt.Sprintf("request %s exceeds limit %s", raw.CPURequest, raw.CPULimit),
		}
	}
	if out.memoryRequest.Cmp(out.memoryLimit) > 0 {
		return out, &ValidationError{
			Field:  "memory_request",
			Rule:   RuleOutOfRange,
			Detail: fmt.Sprintf("request %s exceeds limit %s", raw.MemoryRequest, raw.MemoryLimit),
		}
	}
	return out, nil
}

func checkScaler(raw *RawConfig) error {
	required, supported := requiredScalerKeys(raw.ScalerType)
	if !supported {
		return &ValidationError{
			Field: "scaler_type",
			Rule:  RuleUnsupportedValue,
			Detail: fmt.Sprintf("%q is not a supported scaler kind (supported: %s)",
				raw.ScalerType, strings.Join(SupportedScalers(), ", ")),
		}
	}
	for _, key := range required {
		if raw.ScalerConfig[key] == "" {
			return &ValidationError{
				Field:  "scaler_config",
				Rule:   RuleMissing,
				Detail: fmt.Sprintf("scaler kind %q requires key %q", raw.ScalerType, key),
			}
		}
	}
	return nil
}
