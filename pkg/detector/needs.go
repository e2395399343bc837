package detector

// detectStorage OR-accumulates storage keyword hits across all files
func (c *Classifier) detectStorage(files []FileArtifact) StorageNeeds {
	var needs StorageNeeds
	bucket := false
	for _, f := range files {
		if !hasContent(f) {
			continue
		}
		needs.FileUploads = needs.FileUploads || c.tables.FileUploadKeywords.Any(f.Content)
		needs.ImageProcessing = needs.ImageProcessing || c.tables.ImageKeywords.Any(f.Content)
		bucket = bucket || c.tables.BucketKeywords.Any(f.Content)
	}
	needs.NeedsBucket = bucket || needs.FileUploads || needs.ImageProcessing
	return needs
}

// detectSecurity derives security flags. Authentication or user data always
// implies TLS.
func (c *Classifier) detectSecurity(files []FileArtifact, storage StorageNeeds) SecurityConsiderations {
	sec := SecurityConsiderations{FileUploads: storage.FileUploads}
	ssl := false
	for _, f := range files {
		if !hasContent(f) {
			continue
		}
		sec.HandlesUserData = sec.HandlesUserData || c.tables.UserDataKeywords.Any(f.Content)
		sec.NeedsAuth = sec.NeedsAuth || c.tables.AuthKeywords.Any(f.Content)
		ssl = ssl || c.tables.SSLKeywords.Any(f.Content)
	}
	sec.NeedsSSL = ssl || sec.NeedsAuth || sec.HandlesUserData
	return sec
}

// detectInfrastructure scans for memory, cpu and network intensity keywords.
// Flags are independent and accumulate across files.
func (c *Classifier) detectInfrastructure(files []FileArtifact) InfrastructureNeeds {
	var needs InfrastructureNeeds
	for _, f := range files {
		if !hasContent(f) {
			continue
		}
		needs.MemoryIntensive = needs.MemoryIntensive || c.tables.MemoryKeywords.Any(f.Content)
		needs.CPUIntensive = needs.CPUIntensive || c.tables.CPUKeywords.Any(f.Content)
		needs.NetworkIntensive = needs.NetworkIntensive || c.tables.NetworkKeywords.Any(f.Content)
	}
	return needs
}
