package cfgprops

// Well-known type signatures from the catalog's type system.
const (
	TypeBoolean = "java.lang.Boolean"
	TypeString  = "java.lang.String"
)

// Catalog file names recognized during workspace discovery.
const (
	MetadataFileName           = "spring-configuration-metadata.json"
	AdditionalMetadataFileName = "additional-spring-configuration-metadata.json"
)

// commentMarker starts a comment in a properties line. Completion is never
// offered on commented lines.
const commentMarker = "#"

// keySeparator separates a map property's name from its key.
const keySeparator = '.'
