package workspace

import "testing"

func TestBuildFileGroupsDeduplicatesCaseInsensitively(t *testing.T) {
	manifests := []Manifest{
		{
			Id:          "base",
			ContentType: ContentTypeGameInstallation,
			Files: []ManifestFile{
				{RelativePath: "Data/readme.txt", Size: 10},
			},
		},
		{
			Id:          "mymod",
			ContentType: ContentTypeMod,
			Files: []ManifestFile{
				{RelativePath: "data/README.txt", Size: 20},
			},
		},
	}

	groups := BuildFileGroups(manifests)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}

	group := groups[0]
	if len(group.Records) != 2 {
		t.Fatalf("expected 2 records in group, got %d", len(group.Records))
	}
	if group.RelativePath != "data/README.txt" {
		t.Errorf("expected winning path from highest-priority record, got %q", group.RelativePath)
	}
	if group.HighestPriority().File.Size != 20 {
		t.Errorf("expected highest priority record to be the mod's, got size %d", group.HighestPriority().File.Size)
	}
}

func TestBuildFileGroupsOrdersAscendingByPriority(t *testing.T) {
	manifests := []Manifest{
		{Id: "mod", ContentType: ContentTypeMod, Files: []ManifestFile{{RelativePath: "a.txt"}}},
		{Id: "base", ContentType: ContentTypeGameInstallation, Files: []ManifestFile{{RelativePath: "a.txt"}}},
		{Id: "client", ContentType: ContentTypeGameClient, Files: []ManifestFile{{RelativePath: "a.txt"}}},
	}

	groups := BuildFileGroups(manifests)
	group := groups[0]
	if len(group.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(group.Records))
	}
	wantOrder := []string{"base", "client", "mod"}
	for i, want := range wantOrder {
		if group.Records[i].Manifest.Id != want {
			t.Errorf("record %d: expected manifest %q, got %q", i, want, group.Records[i].Manifest.Id)
		}
	}
}

func TestBuildFileGroupsPreservesDistinctPaths(t *testing.T) {
	manifests := []Manifest{
		{
			Id:          "base",
			ContentType: ContentTypeGameInstallation,
			Files: []ManifestFile{
				{RelativePath: "a.txt"},
				{RelativePath: "b.txt"},
			},
		},
	}

	groups := BuildFileGroups(manifests)
	if len(groups) != 2 {
		t.Fatalf("expected 2 distinct groups, got %d", len(groups))
	}
}
