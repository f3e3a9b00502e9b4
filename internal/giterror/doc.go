// Copyright 2026 RepoMiner HQ
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package giterror classifies errors returned by the GitHub API clients.
// The Inspector examines an error and reports whether it represents an
// authentication failure, a missing repository, a rate limit, or a network
// problem. Classification is string-based so it works uniformly across the
// REST and GraphQL transports, whose libraries surface errors differently.
package giterror
