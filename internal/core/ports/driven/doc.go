// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ClinicalStore: Clinical record persistence and snapshot reads
//   - SubscriberStore: Webhook subscriber registry (read-only from core)
//   - TextCipher: Field-level encryption of stored clinical text
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Nearest-neighbour structure over embedded documents
//   - IndexStore: Persistence of the paired index artifacts
//   - WebhookSender: Signed HTTP delivery to one subscriber
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - GenerativeService: Phrases the final natural-language answer.
//     Without it, queries return the service-error sentinel.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
