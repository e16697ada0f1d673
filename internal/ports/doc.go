// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters and to user-supplied pipeline stages.
//
// In Hexagonal Architecture, ports are the boundaries between the application
// core and the outside world. They define what the pipeline needs without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Source]: Produces a frame per tick (physical controller, chat feed, ...)
//   - [Transform]: Maps frame to frame in the per-tick chain
//   - [Transport]: The serial-link boundary to the peripheral
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) and user modules implement them, which keeps
// the tick loop testable with mocks and the hardware boundary swappable.
package ports
