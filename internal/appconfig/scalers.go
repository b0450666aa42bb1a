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

import "sort"

// scalerRequiredKeys maps each supported scaler kind to the metadata keys it
// cannot function without. Keys beyond the required set are passed through to
// KEDA unchecked, so supporting a new scaler kind is a table entry here, not
// a structural change.
var scalerRequiredKeys = map[string][]string{
	"rabbitmq":   {"host", "queueName"},
	"kafka":      {"bootstrapServers", "consumerGroup", "topic"},
	"prometheus": {"serverAddress", "query", "threshold"},
	"redis":      {"address", "listName", "listLength"},
	"cron":       {"timezone", "start", "end", "desiredReplicas"},
}

// SupportedScalers returns the supported scaler kinds in sorted order.
func SupportedScalers() []string {
	kinds := make([]string, 0, len(scalerRequiredKeys))
	for kind := range scalerRequiredKeys {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// requiredScalerKeys returns the required metadata keys for a scaler kind and
// whether the kind is supported at all.
func requiredScalerKeys(kind string) ([]string, bool) {
	keys, ok := scalerRequiredKeys[kind]
	return keys, ok
}
